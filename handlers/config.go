package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Alphy12345/Alp-version-hal-cost-estimation/api"
	"github.com/Alphy12345/Alp-version-hal-cost-estimation/types"
)

// ShowConfig renders the configuration page: machines, operation types and
// machine-hour-rate rows, all fetched live from the backend.
func (h *Handler) ShowConfig(c *gin.Context) {
	h.renderConfig(c, "")
}

func (h *Handler) renderConfig(c *gin.Context, errMsg string) {
	session := sessions.Default(c)
	ctx := c.Request.Context()

	opTypes, err := h.API.OperationTypes(ctx)
	if err != nil {
		logrus.WithError(err).Error("fetch operation types")
		errMsg = firstNonEmpty(errMsg, api.Message(err))
	}
	machines, err := h.API.Machines(ctx)
	if err != nil {
		logrus.WithError(err).Error("fetch machines")
		errMsg = firstNonEmpty(errMsg, api.Message(err))
	}
	duties, err := h.API.Duties(ctx)
	if err != nil {
		logrus.WithError(err).Error("fetch duties")
		errMsg = firstNonEmpty(errMsg, api.Message(err))
	}
	mhrRows, err := h.API.MHRRows(ctx)
	if err != nil {
		logrus.WithError(err).Error("fetch mhr rows")
		errMsg = firstNonEmpty(errMsg, api.Message(err))
	}

	c.HTML(http.StatusOK, "config.html", gin.H{
		"OperationTypes": opTypes,
		"Machines":       machines,
		"Duties":         duties,
		"MHRRows":        mhrRows,
		"Error":          errMsg,
		"User":           session.Get("username"),
		"IsAdmin":        session.Get("role") == "ADMIN",
		"Active":         "config",
	})
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func (h *Handler) AddMachine(c *gin.Context) {
	var form types.MachineForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderConfig(c, "Machine name and operation type are required")
		return
	}
	if err := h.API.CreateMachine(c.Request.Context(), form.Name, form.OpTypeID); err != nil {
		h.renderConfig(c, api.Message(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/config")
}

func (h *Handler) UpdateMachine(c *gin.Context) {
	var form types.MachineForm
	if err := c.ShouldBind(&form); err != nil || form.ID == 0 {
		h.renderConfig(c, "Machine id, name and operation type are required")
		return
	}
	if err := h.API.UpdateMachine(c.Request.Context(), form.ID, form.Name, form.OpTypeID); err != nil {
		h.renderConfig(c, api.Message(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/config")
}

func (h *Handler) DeleteMachine(c *gin.Context) {
	var form struct {
		ID int64 `form:"id" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		h.renderConfig(c, "Machine id is required")
		return
	}
	if err := h.API.DeleteMachine(c.Request.Context(), form.ID); err != nil {
		h.renderConfig(c, api.Message(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/config")
}

func (h *Handler) AddOperationType(c *gin.Context) {
	var form types.OperationTypeForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderConfig(c, "Operation name is required")
		return
	}
	if err := h.API.CreateOperationType(c.Request.Context(), form.Name); err != nil {
		h.renderConfig(c, api.Message(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/config")
}

func (h *Handler) DeleteOperationType(c *gin.Context) {
	var form struct {
		ID int64 `form:"id" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		h.renderConfig(c, "Operation type id is required")
		return
	}
	if err := h.API.DeleteOperationType(c.Request.Context(), form.ID); err != nil {
		h.renderConfig(c, api.Message(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/config")
}

func (h *Handler) AddMHR(c *gin.Context) {
	var form types.MHRForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderConfig(c, "Operation type, duty, machine and machine hour rate are required")
		return
	}
	if err := h.API.CreateMHR(c.Request.Context(), form.ToRow()); err != nil {
		h.renderConfig(c, api.Message(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/config")
}

func (h *Handler) UpdateMHR(c *gin.Context) {
	var form types.MHRForm
	if err := c.ShouldBind(&form); err != nil || form.ID == 0 {
		h.renderConfig(c, "MHR row id is required")
		return
	}
	if err := h.API.UpdateMHR(c.Request.Context(), form.ID, form.ToRow()); err != nil {
		h.renderConfig(c, api.Message(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/config")
}

func (h *Handler) DeleteMHR(c *gin.Context) {
	var form struct {
		ID int64 `form:"id" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		h.renderConfig(c, "MHR row id is required")
		return
	}
	if err := h.API.DeleteMHR(c.Request.Context(), form.ID); err != nil {
		h.renderConfig(c, api.Message(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/config")
}
