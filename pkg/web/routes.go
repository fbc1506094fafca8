// Package web provides API routes for the web server.
package web

import (
	"net/http"

	"github.com/PancyStudios/SuspensionBotGo/pkg/database"
	"github.com/PancyStudios/SuspensionBotGo/pkg/discord"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/suspensions/:id", suspensionHandler)
		api.GET("/queues", queuesHandler)
		api.GET("/feed", Feed().Handler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
		"feedClients": Feed().ClientCount(),
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Suspension Bot Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// suspensionHandler returns a user's full suspension record
func suspensionHandler(c *gin.Context) {
	record, err := database.FindOrCreateSuspension(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Database Unavailable",
			"message": "No se pudo leer el registro en este momento.",
		})
		return
	}
	c.JSON(http.StatusOK, record)
}

// queuesHandler reports how many users wait in each reconciliation queue
func queuesHandler(c *gin.Context) {
	counts := gin.H{}
	for _, queue := range []models.DueQueue{
		models.QueueSuspensionDue,
		models.QueueUnsuspensionDue,
		models.QueueBanDue,
	} {
		entries, err := database.GetDueEntries(queue)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Database Unavailable",
				"message": "No se pudieron leer las colas en este momento.",
			})
			return
		}
		counts[string(queue)] = len(entries)
	}
	c.JSON(http.StatusOK, counts)
}
