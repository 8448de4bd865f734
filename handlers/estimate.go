package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Alphy12345/Alp-version-hal-cost-estimation/api"
	"github.com/Alphy12345/Alp-version-hal-cost-estimation/flatten"
	"github.com/Alphy12345/Alp-version-hal-cost-estimation/types"
)

// Handler serves the console pages. All state lives in the backend; the
// handlers just fetch, validate, submit, and render.
type Handler struct {
	API *api.Client
}

func New(client *api.Client) *Handler {
	return &Handler{API: client}
}

// Materials offered when the backend has none configured yet.
var defaultMaterials = []api.Material{
	{Name: "steel"},
	{Name: "aluminium"},
	{Name: "titanium"},
}

// ShowEstimate renders the cost-estimation page with fresh reference data.
func (h *Handler) ShowEstimate(c *gin.Context) {
	session := sessions.Default(c)
	ctx := c.Request.Context()

	var loadErr string

	opTypes, err := h.API.OperationTypes(ctx)
	if err != nil {
		logrus.WithError(err).Error("fetch operation types")
		loadErr = api.Message(err)
	}

	machines, err := h.API.Machines(ctx)
	if err != nil {
		logrus.WithError(err).Error("fetch machines")
		loadErr = api.Message(err)
	}

	materials, err := h.API.Materials(ctx)
	if err != nil || len(materials) == 0 {
		materials = defaultMaterials
	}

	c.HTML(http.StatusOK, "estimate.html", gin.H{
		"OperationTypes": opTypes,
		"Machines":       machines,
		"Materials":      materials,
		"LoadError":      loadErr,
		"User":           session.Get("username"),
		"IsAdmin":        session.Get("role") == "ADMIN",
		"Active":         "estimate",
	})
}

// MachineOptions re-renders the machine select for the chosen operation
// type. A previously selected machine that is no longer eligible is dropped;
// an eligible one stays selected.
func (h *Handler) MachineOptions(c *gin.Context) {
	ctx := c.Request.Context()
	opName := c.Query("operation_type")
	current := c.Query("machine_name")

	machines, err := h.API.Machines(ctx)
	if err != nil {
		c.HTML(http.StatusOK, "machine_options.html", gin.H{"Error": api.Message(err)})
		return
	}
	opTypes, err := h.API.OperationTypes(ctx)
	if err != nil {
		c.HTML(http.StatusOK, "machine_options.html", gin.H{"Error": api.Message(err)})
		return
	}

	filtered := api.FilterMachines(machines, opTypes, opName)
	if !api.ContainsMachine(filtered, current) {
		current = ""
	}

	c.HTML(http.StatusOK, "machine_options.html", gin.H{
		"Machines": filtered,
		"Selected": current,
	})
}

// Calculate validates the form and submits it to the backend, rendering the
// flattened cost breakdown as an HTMX fragment.
func (h *Handler) Calculate(c *gin.Context) {
	var form types.EstimateForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "result.html", gin.H{"Error": "Invalid form input"})
		return
	}

	if err := form.Validate(); err != nil {
		c.HTML(http.StatusOK, "result.html", gin.H{"Error": err.Error()})
		return
	}

	raw, err := h.API.Calculate(c.Request.Context(), form.ToRequest())
	if err != nil {
		logrus.WithError(err).Warn("calculate failed")
		c.HTML(http.StatusOK, "result.html", gin.H{"Error": api.Message(err)})
		return
	}

	total, rows, err := breakdownRows(raw)
	if err != nil {
		logrus.WithError(err).Error("unreadable calculate response")
		c.HTML(http.StatusOK, "result.html", gin.H{"Error": "Received an unreadable response from the cost estimation service"})
		return
	}

	c.HTML(http.StatusOK, "result.html", gin.H{
		"TotalCost": total,
		"Rows":      rows,
	})
}

// DisplayRow is one line of the rendered breakdown table.
type DisplayRow struct {
	Label string
	Value string
}

const unitCostPath = "cost_breakdown.unit_cost"

// Top-level response fields that duplicate the submitted form (shape,
// dimensions, selected machine, ...) or are too noisy for the generic table.
var skippedSections = map[string]bool{
	"calculation_steps": true,
	"shape":             true,
	"volume":            true,
	"material":          true,
	"operation_type":    true,
	"selected_machine":  true,
	"dimensions":        true,
}

// breakdownRows turns a raw calculate response into the headline unit cost
// and the remaining display rows.
func breakdownRows(raw json.RawMessage) (string, []DisplayRow, error) {
	flat, err := flatten.Flatten(raw)
	if err != nil {
		return "", nil, err
	}

	total := ""
	var rows []DisplayRow
	for _, r := range flat {
		if r.Path == unitCostPath {
			total = flatten.FormatValue("unit_cost", r.Value)
			continue
		}
		if skippedSections[sectionOf(r.Path)] {
			continue
		}
		rows = append(rows, DisplayRow{
			Label: flatten.Label(r.Path),
			Value: flatten.FormatValue(leafKey(r.Path), r.Value),
		})
	}
	return total, rows, nil
}

func sectionOf(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

func leafKey(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.IndexByte(path, '['); i >= 0 {
		path = path[:i]
	}
	return path
}
