package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieOptions describes the session cookie. HttpOnly is always set.
type CookieOptions struct {
	Name     string
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

func (o CookieOptions) normalize() CookieOptions {
	if o.Name == "" {
		o.Name = "session"
	}
	if o.Path == "" {
		o.Path = "/"
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

func setCookie(c *gin.Context, o CookieOptions, value string, ttl time.Duration) {
	c.SetSameSite(o.SameSite)
	c.SetCookie(o.Name, value, int(ttl.Seconds()), o.Path, o.Domain, o.Secure, true)
}

func clearCookie(c *gin.Context, o CookieOptions) {
	c.SetSameSite(o.SameSite)
	c.SetCookie(o.Name, "", -1, o.Path, o.Domain, o.Secure, true)
}
