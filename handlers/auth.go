package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alphy12345/Alp-version-hal-cost-estimation/database"
)

func ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

// Login checks the submitted credentials against the local operator store
// and opens a cookie session.
func Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var dbHash, role string
	var id int
	err := database.DB.QueryRow("SELECT id, password_hash, role FROM users WHERE username=?", username).Scan(&id, &dbHash, &role)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "User not found"})
		return
	case err != nil:
		// A store failure is not the operator's fault; never report it as
		// bad credentials.
		logrus.WithError(err).WithField("username", username).Error("look up operator account")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong. Please try again."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid Password"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", id)
	session.Set("role", role)
	session.Set("username", username)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}
