package v1

import (
	"net/http"

	"github.com/edunomics/superintendent/internal/game"
	"github.com/edunomics/superintendent/internal/httputil"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers the routes for sessions with
// the RouterGroup that is passed.
func (co Controller) RegisterSessionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsSessionList)
		r.POST("", co.CreateSession)
	}

	// Session with ID
	{
		r.OPTIONS("/:id", co.OptionsSessionDetail)
		r.GET("/:id", co.GetSession)
		r.DELETE("/:id", co.DeleteSession)
	}

	// Actions
	{
		r.OPTIONS("/:id/accept", co.OptionsSessionAction)
		r.POST("/:id/accept", co.AcceptBriefing)
		r.OPTIONS("/:id/moves", co.OptionsSessionAction)
		r.POST("/:id/moves", co.CreateMove)
		r.OPTIONS("/:id/undo", co.OptionsSessionAction)
		r.POST("/:id/undo", co.Undo)
		r.OPTIONS("/:id/redo", co.OptionsSessionAction)
		r.POST("/:id/redo", co.Redo)
		r.OPTIONS("/:id/proposals", co.OptionsSessionAction)
		r.POST("/:id/proposals", co.CreateProposal)
		r.OPTIONS("/:id/narrative-template", co.OptionsSessionRead)
		r.GET("/:id/narrative-template", co.GetNarrativeTemplate)
		r.OPTIONS("/:id/submissions", co.OptionsSessionAction)
		r.POST("/:id/submissions", co.CreateSubmission)
		r.OPTIONS("/:id/revise", co.OptionsSessionAction)
		r.POST("/:id/revise", co.Revise)
		r.OPTIONS("/:id/advance", co.OptionsSessionAction)
		r.POST("/:id/advance", co.Advance)
		r.OPTIONS("/:id/chat", co.OptionsSessionAction)
		r.POST("/:id/chat", co.CreateChatMessage)
		r.OPTIONS("/:id/years", co.OptionsSessionRead)
		r.GET("/:id/years", co.GetYears)
	}
}

// respond writes the result of a session operation.
func respond(c *gin.Context, code int, view game.View, err error) {
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{Error: &s})
		return
	}

	data := newSession(c, view)
	c.JSON(code, SessionResponse{Data: &data})
}

// bind binds the request body to data. If that fails, the
// error response is written and ok is false.
func bind(c *gin.Context, data any) (ok bool) {
	if err := httputil.BindData(c, data); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SessionResponse{Error: &s})
		return false
	}
	return true
}

// optionsFor returns a handler that sets the allowed verbs for an existing session.
func (co Controller) optionsFor(allow gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}

		if _, err := co.Service.Get(c.Request.Context(), id); err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		allow(c)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sessions
// @Success		204
// @Router			/v1/sessions [options]
func (co Controller) OptionsSessionList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sessions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id} [options]
func (co Controller) OptionsSessionDetail(c *gin.Context) {
	co.optionsFor(httputil.OptionsGetDelete)(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sessions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id}/accept [options]
// @Router			/v1/sessions/{id}/moves [options]
// @Router			/v1/sessions/{id}/undo [options]
// @Router			/v1/sessions/{id}/redo [options]
// @Router			/v1/sessions/{id}/proposals [options]
// @Router			/v1/sessions/{id}/submissions [options]
// @Router			/v1/sessions/{id}/revise [options]
// @Router			/v1/sessions/{id}/advance [options]
// @Router			/v1/sessions/{id}/chat [options]
func (co Controller) OptionsSessionAction(c *gin.Context) {
	co.optionsFor(httputil.OptionsPost)(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sessions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id}/narrative-template [options]
// @Router			/v1/sessions/{id}/years [options]
func (co Controller) OptionsSessionRead(c *gin.Context) {
	co.optionsFor(httputil.OptionsGet)(c)
}

// @Summary		Create session
// @Description	Starts a new game. With a district, the briefing is written for that district. The session starts in the briefing phase.
// @Tags			Sessions
// @Accept			json
// @Produce		json
// @Success		201		{object}	SessionResponse
// @Failure		400		{object}	SessionResponse
// @Failure		500		{object}	SessionResponse
// @Param			session	body		SessionCreate	true	"Session"
// @Router			/v1/sessions [post]
func (co Controller) CreateSession(c *gin.Context) {
	var create SessionCreate
	if !bind(c, &create) {
		return
	}

	view, err := co.Service.Start(c.Request.Context(), game.StartRequest{
		Scenario: create.Scenario,
		District: create.District,
	})
	respond(c, http.StatusCreated, view, err)
}

// @Summary		Get session
// @Description	Returns a session with all values derived from the current decisions
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Failure		404	{object}	SessionResponse
// @Failure		500	{object}	SessionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id} [get]
func (co Controller) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := co.Service.Get(c.Request.Context(), id)
	respond(c, http.StatusOK, view, err)
}

// @Summary		Delete session
// @Description	Deletes a session
// @Tags			Sessions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id} [delete]
func (co Controller) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := co.Service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Accept briefing
// @Description	Starts the first year. For a district, public finance data and the school roster are loaded.
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Failure		404	{object}	SessionResponse
// @Failure		409	{object}	SessionResponse
// @Failure		500	{object}	SessionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id}/accept [post]
func (co Controller) AcceptBriefing(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := co.Service.Accept(c.Request.Context(), id)
	respond(c, http.StatusOK, view, err)
}

// @Summary		Sort card
// @Description	Sets the selection of a card in the current hand
// @Tags			Sessions
// @Accept			json
// @Produce		json
// @Success		200		{object}	SessionResponse
// @Failure		400		{object}	SessionResponse
// @Failure		404		{object}	SessionResponse
// @Failure		500		{object}	SessionResponse
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			move	body		MoveCreate	true	"Move"
// @Router			/v1/sessions/{id}/moves [post]
func (co Controller) CreateMove(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var move MoveCreate
	if !bind(c, &move) {
		return
	}

	view, err := co.Service.Move(c.Request.Context(), id, move.Card, move.Selection)
	respond(c, http.StatusOK, view, err)
}

// @Summary		Undo
// @Description	Reverts the last change to the current hand. Does nothing at the start of the history.
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Failure		404	{object}	SessionResponse
// @Failure		500	{object}	SessionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id}/undo [post]
func (co Controller) Undo(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := co.Service.Undo(c.Request.Context(), id)
	respond(c, http.StatusOK, view, err)
}

// @Summary		Redo
// @Description	Restores the last undone change. Does nothing at the end of the history.
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Failure		404	{object}	SessionResponse
// @Failure		500	{object}	SessionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id}/redo [post]
func (co Controller) Redo(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := co.Service.Redo(c.Request.Context(), id)
	respond(c, http.StatusOK, view, err)
}

// @Summary		Add proposal
// @Description	Adds a custom proposal to the current hand
// @Tags			Sessions
// @Accept			json
// @Produce		json
// @Success		201			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		404			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			id			path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			proposal	body		ProposalCreate	true	"Proposal"
// @Router			/v1/sessions/{id}/proposals [post]
func (co Controller) CreateProposal(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var create ProposalCreate
	if !bind(c, &create) {
		return
	}

	proposal, err := create.model()
	if err != nil {
		respond(c, http.StatusBadRequest, game.View{}, err)
		return
	}

	view, err := co.Service.AddProposal(c.Request.Context(), id, proposal)
	respond(c, http.StatusCreated, view, err)
}

// @Summary		Get narrative template
// @Description	Returns a draft narrative built from the first funded investment and the first funded cut
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	NarrativeTemplateResponse
// @Failure		400	{object}	NarrativeTemplateResponse
// @Failure		404	{object}	NarrativeTemplateResponse
// @Failure		500	{object}	NarrativeTemplateResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id}/narrative-template [get]
func (co Controller) GetNarrativeTemplate(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	narrative, err := co.Service.NarrativeTemplate(c.Request.Context(), id)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NarrativeTemplateResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, NarrativeTemplateResponse{Data: &NarrativeTemplate{Narrative: narrative}})
}

// @Summary		Submit budget
// @Description	Presents the budget to the board. Every card must be sorted and the narrative must be at least 10 characters long.
// @Tags			Sessions
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		404			{object}	SessionResponse
// @Failure		409			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			submission	body		SubmissionCreate	true	"Submission"
// @Router			/v1/sessions/{id}/submissions [post]
func (co Controller) CreateSubmission(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var submission SubmissionCreate
	if !bind(c, &submission) {
		return
	}

	view, err := co.Service.Submit(c.Request.Context(), id, submission.Narrative)
	respond(c, http.StatusOK, view, err)
}

// @Summary		Revise budget
// @Description	Returns to the budget after a verdict. The verdict and the board chat are discarded.
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Failure		404	{object}	SessionResponse
// @Failure		500	{object}	SessionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id}/revise [post]
func (co Controller) Revise(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := co.Service.Revise(c.Request.Context(), id)
	respond(c, http.StatusOK, view, err)
}

// @Summary		Advance year
// @Description	Starts the next fiscal year after the board approved the budget
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		400	{object}	SessionResponse
// @Failure		404	{object}	SessionResponse
// @Failure		500	{object}	SessionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id}/advance [post]
func (co Controller) Advance(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := co.Service.Advance(c.Request.Context(), id)
	respond(c, http.StatusOK, view, err)
}

// @Summary		Ask the board
// @Description	Sends a question to the board after a verdict. The answer is appended to the chat.
// @Tags			Sessions
// @Accept			json
// @Produce		json
// @Success		200		{object}	SessionResponse
// @Failure		400		{object}	SessionResponse
// @Failure		404		{object}	SessionResponse
// @Failure		409		{object}	SessionResponse
// @Failure		500		{object}	SessionResponse
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			message	body		ChatCreate	true	"Message"
// @Router			/v1/sessions/{id}/chat [post]
func (co Controller) CreateChatMessage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var message ChatCreate
	if !bind(c, &message) {
		return
	}

	view, err := co.Service.Chat(c.Request.Context(), id, message.Message)
	respond(c, http.StatusOK, view, err)
}

// @Summary		List years
// @Description	Returns the results of all completed fiscal years, oldest first
// @Tags			Sessions
// @Produce		json
// @Success		200	{object}	YearListResponse
// @Failure		400	{object}	YearListResponse
// @Failure		404	{object}	YearListResponse
// @Failure		500	{object}	YearListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sessions/{id}/years [get]
func (co Controller) GetYears(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	years, err := co.Service.YearResults(c.Request.Context(), id)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), YearListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, YearListResponse{Data: years})
}
