package controllers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/helper-hub/api-go/signup"
)

// signupSessionTTL is how long an idle wizard session survives before a
// sweep drops it. Abandoned browser tabs do not accumulate forever.
const signupSessionTTL = 30 * time.Minute

// SignupController drives server-side sign-up wizard sessions. Each session
// wraps one wizard; a per-session mutex serializes its step changes.
type SignupController struct {
	creator signup.AccountCreator

	mu       sync.Mutex
	sessions map[string]*signupSession
}

type signupSession struct {
	mu        sync.Mutex
	wizard    *signup.Wizard
	updatedAt time.Time
}

func NewSignupController(creator signup.AccountCreator) *SignupController {
	return &SignupController{
		creator:  creator,
		sessions: make(map[string]*signupSession),
	}
}

func (sc *SignupController) session(id string) *signupSession {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sessions[id]
}

// pruneStale drops sessions idle past the TTL. Caller holds sc.mu.
func (sc *SignupController) pruneStale(now time.Time) {
	for id, s := range sc.sessions {
		s.mu.Lock()
		stale := now.Sub(s.updatedAt) > signupSessionTTL
		s.mu.Unlock()
		if stale {
			delete(sc.sessions, id)
		}
	}
}

// StartSession godoc
// @Summary Open a new sign-up wizard session
// @Tags signup
// @Produce json
// @Router /signup/sessions [post]
func (sc *SignupController) StartSession(c *gin.Context) {
	wizard := signup.NewWizard(sc.creator)
	wizard.Open()

	id := uuid.New().String()
	sc.mu.Lock()
	sc.pruneStale(time.Now())
	sc.sessions[id] = &signupSession{wizard: wizard, updatedAt: time.Now()}
	sc.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"sessionId": id,
		"step":      wizard.Step(),
		"form":      wizard.Form(),
	})
}

// GetSession godoc
// @Summary Current step and form data for a session
// @Tags signup
// @Produce json
// @Param sessionId path string true "Session ID"
// @Router /signup/sessions/{sessionId} [get]
func (sc *SignupController) GetSession(c *gin.Context) {
	s := sc.session(c.Param("sessionId"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "success": false})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"step":          s.wizard.Step(),
		"form":          s.wizard.Form(),
		"switchToLogin": s.wizard.SwitchToLogin(),
	})
}

// UpdateForm godoc
// @Summary Apply field edits to the wizard form
// @Tags signup
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Router /signup/sessions/{sessionId}/form [patch]
func (sc *SignupController) UpdateForm(c *gin.Context) {
	s := sc.session(c.Param("sessionId"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "success": false})
		return
	}

	var input struct {
		Name                *string `json:"name"`
		Phone               *string `json:"phone"`
		Email               *string `json:"email"`
		Month               *string `json:"month"`
		Day                 *string `json:"day"`
		Year                *string `json:"year"`
		Username            *string `json:"username"`
		ToggleContactMethod bool    `json:"toggleContactMethod"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.ToggleContactMethod {
		s.wizard.ToggleContactMethod()
	}
	if input.Name != nil {
		s.wizard.SetName(*input.Name)
	}
	if input.Phone != nil {
		s.wizard.SetPhone(*input.Phone)
	}
	if input.Email != nil {
		s.wizard.SetEmail(*input.Email)
	}
	if input.Month != nil {
		s.wizard.SetMonth(*input.Month)
	}
	if input.Day != nil {
		s.wizard.SetDay(*input.Day)
	}
	if input.Year != nil {
		s.wizard.SetYear(*input.Year)
	}
	if input.Username != nil {
		s.wizard.InputUsername(*input.Username)
	}
	s.updatedAt = time.Now()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"step":    s.wizard.Step(),
		"form":    s.wizard.Form(),
	})
}

// Next godoc
// @Summary Validate the current step and advance
// @Tags signup
// @Produce json
// @Param sessionId path string true "Session ID"
// @Router /signup/sessions/{sessionId}/next [post]
func (sc *SignupController) Next(c *gin.Context) {
	s := sc.session(c.Param("sessionId"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "success": false})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.wizard.Next(); err != nil {
		respondWizardError(c, err)
		return
	}
	s.updatedAt = time.Now()

	c.JSON(http.StatusOK, gin.H{"success": true, "step": s.wizard.Step(), "form": s.wizard.Form()})
}

// Back godoc
// @Summary Return to the previous step, keeping entered data
// @Tags signup
// @Produce json
// @Param sessionId path string true "Session ID"
// @Router /signup/sessions/{sessionId}/back [post]
func (sc *SignupController) Back(c *gin.Context) {
	s := sc.session(c.Param("sessionId"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "success": false})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.wizard.Back(); err != nil {
		respondWizardError(c, err)
		return
	}
	s.updatedAt = time.Now()

	c.JSON(http.StatusOK, gin.H{"success": true, "step": s.wizard.Step(), "form": s.wizard.Form()})
}

// SubmitPassword godoc
// @Summary Finish the wizard by setting the password and creating the account
// @Tags signup
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Router /signup/sessions/{sessionId}/password [post]
func (sc *SignupController) SubmitPassword(c *gin.Context) {
	s := sc.session(c.Param("sessionId"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "success": false})
		return
	}

	var input struct {
		Password      string `json:"password" binding:"required"`
		TermsAccepted bool   `json:"termsAccepted"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.wizard.SubmitPassword(c.Request.Context(), input.Password, input.TermsAccepted)
	if err != nil {
		if errors.Is(err, signup.ErrAlreadyRegistered) {
			c.JSON(http.StatusConflict, gin.H{
				"error":         "User already registered",
				"switchToLogin": true,
				"success":       false,
			})
			return
		}
		respondWizardError(c, err)
		return
	}
	s.updatedAt = time.Now()

	c.JSON(http.StatusOK, gin.H{"success": true, "step": s.wizard.Step()})
}

// Finish godoc
// @Summary Acknowledge the welcome screen and end the session
// @Tags signup
// @Produce json
// @Param sessionId path string true "Session ID"
// @Router /signup/sessions/{sessionId}/finish [post]
func (sc *SignupController) Finish(c *gin.Context) {
	id := c.Param("sessionId")
	s := sc.session(id)
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "success": false})
		return
	}

	s.mu.Lock()
	err := s.wizard.Finish()
	s.mu.Unlock()
	if err != nil {
		respondWizardError(c, err)
		return
	}

	sc.mu.Lock()
	delete(sc.sessions, id)
	sc.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Welcome aboard!"})
}

// CloseSession godoc
// @Summary Abandon the wizard and wipe all entered data
// @Tags signup
// @Produce json
// @Param sessionId path string true "Session ID"
// @Router /signup/sessions/{sessionId} [delete]
func (sc *SignupController) CloseSession(c *gin.Context) {
	id := c.Param("sessionId")
	s := sc.session(id)
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "success": false})
		return
	}

	s.mu.Lock()
	s.wizard.Close()
	s.mu.Unlock()

	sc.mu.Lock()
	delete(sc.sessions, id)
	sc.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session closed"})
}

func respondWizardError(c *gin.Context, err error) {
	var vErr *signup.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     vErr.Message,
			"errorType": vErr.Type,
			"field":     vErr.Field,
			"success":   false,
		})
		return
	}
	if errors.Is(err, signup.ErrInvalidTransition) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "success": false})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong", "success": false})
}
