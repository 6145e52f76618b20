package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aiko543/quotedeck/internal/settingsstore"
)

// AllCategoriesLabel is the display label for the unfiltered option.
const AllCategoriesLabel = "All Categories"

type CategoriesController struct {
	store    QuoteStore
	settings *settingsstore.SettingsStore
}

func NewCategoriesController(store QuoteStore, settings *settingsstore.SettingsStore) *CategoriesController {
	return &CategoriesController{
		store:    store,
		settings: settings,
	}
}

type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type CategoriesResponse struct {
	Options  []CategoryOption `json:"options"`
	Selected string           `json:"selected"`
	Count    int              `json:"count"`
}

// GetCategories returns the distinct categories in first-seen order, with
// the "All Categories" option prepended exactly once. The currently
// selected filter is included so the dropdown can restore its state.
func (controller *CategoriesController) GetCategories(c *gin.Context) {
	categories, err := controller.store.GetCategories()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	options := make([]CategoryOption, 0, len(categories)+1)
	options = append(options, CategoryOption{Value: settingsstore.CategoryAll, Label: AllCategoriesLabel})
	for _, category := range categories {
		options = append(options, CategoryOption{Value: category, Label: category})
	}

	selected := controller.settings.GetSelectedCategory()
	// The stored filter may point at a category that no longer exists
	// after an import or replace. Fall back to the unfiltered view.
	if selected != settingsstore.CategoryAll && !containsCategory(categories, selected) {
		selected = settingsstore.CategoryAll
		_ = controller.settings.ClearSelectedCategory()
	}

	c.IndentedJSON(http.StatusOK, CategoriesResponse{
		Options:  options,
		Selected: selected,
		Count:    len(categories),
	})
}

type SetFilterRequest struct {
	Category string `json:"category"`
}

// GetFilter returns the persisted category filter.
func (controller *CategoriesController) GetFilter(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"category": controller.settings.GetSelectedCategory()})
}

// SetFilter persists the category filter so it survives restarts.
func (controller *CategoriesController) SetFilter(c *gin.Context) {
	var req SetFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Category == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}

	if req.Category != settingsstore.CategoryAll {
		categories, err := controller.store.GetCategories()
		if err != nil {
			c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !containsCategory(categories, req.Category) {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + req.Category})
			return
		}
	}

	if err := controller.settings.SetSelectedCategory(req.Category); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"category": req.Category})
}

func containsCategory(categories []string, candidate string) bool {
	for _, category := range categories {
		if category == candidate {
			return true
		}
	}
	return false
}
