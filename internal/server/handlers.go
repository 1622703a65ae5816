package server

import (
	"errors"
	"net/http"

	"NutriGini/internal/assistant"
	"NutriGini/internal/completion"
	"NutriGini/internal/utility"

	"github.com/labstack/echo/v4"
)

/* =================================================================================
							DTOs (Data Transfer Objects)
=================================================================================*/

const (
	pageTitle   = "Gini Nutritionist Chatbot"
	pageHeading = "NutriGINI: Generative Informational Nutritional Initiative"
	pageBlurb   = "Ask anything related to nutrition, recipes, meal plans, and more!"

	serviceUnavailableMsg = "AI service temporarily unavailable. Please try again later."
)

// pageData is what index.html renders. The form fields echo back what the
// user typed so a follow-up can be sent without retyping the base query.
type pageData struct {
	Title   string
	Heading string
	Blurb   string
	Query   string
	Further string
	Turn    *assistant.Turn
	Error   string
}

// AskRequest is the JSON body for /api/ask and /api/ask/further.
type AskRequest struct {
	Query   string `json:"query" form:"query"`
	Further string `json:"further,omitempty" form:"further"`
}

// PromptInfo is the public view of one template.
type PromptInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newPage(query, further string) pageData {
	return pageData{
		Title:   pageTitle,
		Heading: pageHeading,
		Blurb:   pageBlurb,
		Query:   query,
		Further: further,
	}
}

/*=================================================================================
									HANDLERS
=================================================================================*/

// indexHandler serves the empty form with the sample query filled in.
func (s *Server) indexHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", newPage(assistant.SampleQuery, ""))
}

// askFormHandler answers the primary form submission and re-renders the page.
func (s *Server) askFormHandler(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "index.html", withError(newPage("", ""), "Invalid form submission"))
	}

	page := newPage(req.Query, req.Further)
	turn, err := s.assistant.Ask(c.Request().Context(), req.Query)
	if err != nil {
		status, msg := errorStatus(err)
		utility.RequestLogger(c).Error().Err(err).Msg("ask failed")
		return c.Render(status, "index.html", withError(page, msg))
	}

	page.Turn = turn
	return c.Render(http.StatusOK, "index.html", page)
}

// furtherFormHandler answers the follow-up form submission.
func (s *Server) furtherFormHandler(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "index.html", withError(newPage("", ""), "Invalid form submission"))
	}

	page := newPage(req.Query, req.Further)
	turn, err := s.assistant.Clarify(c.Request().Context(), req.Query, req.Further)
	if err != nil {
		status, msg := errorStatus(err)
		utility.RequestLogger(c).Error().Err(err).Msg("further query failed")
		return c.Render(status, "index.html", withError(page, msg))
	}

	page.Turn = turn
	return c.Render(http.StatusOK, "index.html", page)
}

// apiAskHandler is the JSON variant of askFormHandler.
func (s *Server) apiAskHandler(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	turn, err := s.assistant.Ask(c.Request().Context(), req.Query)
	if err != nil {
		status, msg := errorStatus(err)
		utility.RequestLogger(c).Error().Err(err).Msg("api ask failed")
		return c.JSON(status, map[string]string{"error": msg})
	}
	return c.JSON(http.StatusOK, turn)
}

// apiFurtherHandler is the JSON variant of furtherFormHandler.
func (s *Server) apiFurtherHandler(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	turn, err := s.assistant.Clarify(c.Request().Context(), req.Query, req.Further)
	if err != nil {
		status, msg := errorStatus(err)
		utility.RequestLogger(c).Error().Err(err).Msg("api further query failed")
		return c.JSON(status, map[string]string{"error": msg})
	}
	return c.JSON(http.StatusOK, turn)
}

// promptsHandler lists the templates the router can choose from, in order.
func (s *Server) promptsHandler(c echo.Context) error {
	specs := s.registry.List()
	out := make([]PromptInfo, 0, len(specs))
	for _, p := range specs {
		out = append(out, PromptInfo{Name: p.Name, Description: p.Description})
	}
	return c.JSON(http.StatusOK, out)
}

/*=================================================================================
								HELPER FUNCTIONS
=================================================================================*/

func withError(p pageData, msg string) pageData {
	p.Error = msg
	return p
}

// errorStatus maps an assistant error to an HTTP status and a user-facing message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, assistant.ErrEmptyQuery), errors.Is(err, assistant.ErrEmptyClarification):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, completion.ErrTimeout):
		return http.StatusGatewayTimeout, "The AI service took too long to answer. Please try again."
	default:
		return http.StatusBadGateway, serviceUnavailableMsg
	}
}
