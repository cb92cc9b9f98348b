package webserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ServiceClient is an orchestrator credential row. Secrets are stored
// bcrypt-hashed by admin tooling.
type ServiceClient struct {
	ID         string `gorm:"primaryKey;size:64"`
	Name       string `gorm:"size:128"`
	SecretHash string `gorm:"size:128;not null"`
	Active     bool   `gorm:"default:true"`
}

type Auth struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuth(db *gorm.DB, secret []byte) Auth {
	return Auth{db: db, jwtSecret: secret}
}

// Token exchanges a client ID/secret pair for a short-lived bearer token.
func (a Auth) Token(c *gin.Context) {
	var req struct {
		ClientID     string `json:"clientId"     binding:"required,min=1,max=64"`
		ClientSecret string `json:"clientSecret" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var client ServiceClient
	if err := a.db.First(&client, "id = ? AND active = ?", req.ClientID, true).Error; err != nil {
		log.Printf("Auth failure for %s from IP %s", req.ClientID, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.SecretHash), []byte(req.ClientSecret)); err != nil {
		log.Printf("Auth failure for %s from IP %s", req.ClientID, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid credentials"})
		return
	}

	token, err := issueJWT(client.ID, a.jwtSecret)
	if err != nil {
		log.Printf("Failed to issue token for %s: %v", client.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func issueJWT(clientID string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": clientID,
		"jti": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	return token.SignedString(secret)
}
