package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aiko543/quotedeck/internal/database/quotes"
	"github.com/Aiko543/quotedeck/internal/entities"
	"github.com/Aiko543/quotedeck/internal/picker"
	"github.com/Aiko543/quotedeck/internal/settingsstore"
	"github.com/Aiko543/quotedeck/internal/tasks"
)

type QuotesController struct {
	store      QuoteStore
	picker     *picker.Picker
	settings   *settingsstore.SettingsStore
	sessions   *SessionManager
	taskClient *tasks.Client
}

func NewQuotesController(store QuoteStore, quotePicker *picker.Picker, settings *settingsstore.SettingsStore, sessions *SessionManager, taskClient *tasks.Client) *QuotesController {
	return &QuotesController{
		store:      store,
		picker:     quotePicker,
		settings:   settings,
		sessions:   sessions,
		taskClient: taskClient,
	}
}

type AddQuoteRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (controller *QuotesController) GetAllQuotes(c *gin.Context) {
	category := c.Query("category")

	var (
		list []entities.Quote
		err  error
	)
	if category == "" || category == settingsstore.CategoryAll {
		list, err = controller.store.GetAll()
	} else {
		list, err = controller.store.GetByCategory(category)
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"quotes": list, "count": len(list)})
}

func (controller *QuotesController) AddQuote(c *gin.Context) {
	var req AddQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := controller.store.Add(req.Text, req.Category)
	if err != nil {
		if errors.Is(err, quotes.ErrEmptyField) {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Push the new quote in the background so it reaches the remote
	// endpoint without waiting for the next scheduled cycle.
	if controller.taskClient != nil {
		if _, err := controller.taskClient.Add(tasks.PushQuoteTask{QuoteID: quote.ID}).Save(); err != nil {
			// Not fatal: the next sync cycle picks up pending quotes anyway
			c.IndentedJSON(http.StatusCreated, gin.H{"quote": quote, "push_queued": false})
			return
		}
		c.IndentedJSON(http.StatusCreated, gin.H{"quote": quote, "push_queued": true})
		return
	}

	c.IndentedJSON(http.StatusCreated, gin.H{"quote": quote, "push_queued": false})
}

// GetRandomQuote picks a random quote. The category filter comes from the
// query string if present, otherwise from the persisted selection. The
// picked quote is remembered in the session so it survives page reloads.
func (controller *QuotesController) GetRandomQuote(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		category = controller.settings.GetSelectedCategory()
	}

	quote, err := controller.picker.Pick(category)
	if err != nil {
		if errors.Is(err, picker.ErrNoQuotes) {
			c.IndentedJSON(http.StatusNotFound, gin.H{"error": "no quotes available", "category": category})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if controller.sessions != nil {
		controller.sessions.RememberQuote(c.Request, quote.Key)
	}

	c.IndentedJSON(http.StatusOK, quote)
}

// GetLastViewed returns the quote this session saw most recently.
func (controller *QuotesController) GetLastViewed(c *gin.Context) {
	if controller.sessions == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "sessions are not enabled"})
		return
	}

	key := controller.sessions.LastQuoteKey(c.Request)
	if key == "" {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "no quote viewed in this session"})
		return
	}

	quote, err := controller.store.GetByKey(key)
	if err != nil {
		// The quote may have been removed by an import or replace since
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "last viewed quote no longer exists"})
		return
	}

	response := gin.H{"quote": quote}
	if at := controller.sessions.LastViewedAt(c.Request); at != nil {
		response["viewed_at"] = at
	}
	c.IndentedJSON(http.StatusOK, response)
}

func (controller *QuotesController) GetQuoteStats(c *gin.Context) {
	total, err := controller.store.Count()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	categories, err := controller.store.GetCategories()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pending, err := controller.store.GetPending()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"total_quotes":     total,
		"total_categories": len(categories),
		"pending_sync":     len(pending),
	})
}
