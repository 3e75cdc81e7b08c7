package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/nav"
)

// ScrollEvent is the client event that performs a smooth scroll.
const ScrollEvent = "folio:scroll"

// handleHome opens a fresh page on every load, so reloading resets all
// interaction state.
func (s *Server) handleHome(c *gin.Context) {
	page := s.pages.New()
	c.HTML(http.StatusOK, "index.html", s.pageView(page))
}

func (s *Server) handleToggleMenu(c *gin.Context) {
	page := pageFrom(c)
	page.Navigator.ToggleMobileMenu()
	c.HTML(http.StatusOK, "mobile-menu", navViewFor(page))
}

func (s *Server) handleGoto(c *gin.Context) {
	page := pageFrom(c)
	id := strings.Trim(c.Param("id"), "/")

	if err := page.Navigator.ScrollTo(id); err != nil {
		if errors.Is(err, nav.ErrUnknownSection) {
			c.HTML(http.StatusNotFound, "mobile-menu", navViewFor(page))
			return
		}
		c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if target, ok := page.TakeScroll(); ok {
		trigger, err := json.Marshal(map[string]any{ScrollEvent: gin.H{"id": target}})
		if err != nil {
			c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Header("HX-Trigger", string(trigger))
	}
	c.HTML(http.StatusOK, "mobile-menu", navViewFor(page))
}

func (s *Server) handleToggleExperience(c *gin.Context) {
	page := pageFrom(c)
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(s.site.Experience) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such role"})
		return
	}
	if !s.site.Experience[index].Expandable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is not expandable"})
		return
	}

	page.Disclosure.Toggle(index)
	c.HTML(http.StatusOK, "experience-body", s.experienceView(page, index))
}

func formFrom(c *gin.Context) contact.Form {
	return contact.Form{
		Name:    c.PostForm(contact.FieldName),
		Email:   c.PostForm(contact.FieldEmail),
		Message: c.PostForm(contact.FieldMessage),
	}
}

// handleContactFields records edits and answers with the submit button,
// enabled only when the form is valid.
func (s *Server) handleContactFields(c *gin.Context) {
	page := pageFrom(c)
	status := http.StatusOK
	if err := page.Contact.SetForm(formFrom(c)); err != nil {
		status = http.StatusConflict
	}
	c.HTML(status, "contact-submit", contactViewFor(page.Contact))
}

func (s *Server) handleContactSubmit(c *gin.Context) {
	page := pageFrom(c)

	if err := page.Contact.SetForm(formFrom(c)); err != nil {
		c.HTML(http.StatusConflict, "contact-section", contactViewFor(page.Contact))
		return
	}

	sub, err := page.Contact.Begin()
	switch {
	case errors.Is(err, contact.ErrInvalid):
		c.HTML(http.StatusUnprocessableEntity, "contact-section", contactViewFor(page.Contact))
		return
	case err != nil:
		c.HTML(http.StatusConflict, "contact-section", contactViewFor(page.Contact))
		return
	}
	// Whatever landed in the hidden field goes along so the relay can
	// flag the sender.
	sub.Honeypot = c.PostForm(contact.FieldHoneypot)

	// The exchange outlives a closed tab; the relay timeout bounds it.
	ctx := context.WithoutCancel(c.Request.Context())
	sendErr := s.relay.Send(ctx, sub)
	status, err := page.Contact.Complete(sendErr)
	if err != nil {
		c.Error(err)
	}
	if sendErr != nil {
		s.logger.Info("contact submission failed", "page", page.ID, "error", sendErr, "status", status.String())
	}
	c.HTML(http.StatusOK, "contact-section", contactViewFor(page.Contact))
}

func (s *Server) handleContactReset(c *gin.Context) {
	page := pageFrom(c)
	status := http.StatusOK
	if err := page.Contact.Reset(); err != nil {
		status = http.StatusConflict
	}
	c.HTML(status, "contact-section", contactViewFor(page.Contact))
}
