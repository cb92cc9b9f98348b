package webserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
	"github.com/crewdesk/crewdesk/src/dispatch/metrics"
)

type Metrics struct {
	calc *metrics.Calculator
}

func NewMetrics(calc *metrics.Calculator) Metrics {
	return Metrics{calc: calc}
}

func (m Metrics) Mission(c *gin.Context) {
	out, err := m.calc.CalculateMissionMetrics(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"err": "mission not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "mission store unavailable"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (m Metrics) Agent(c *gin.Context) {
	out, err := m.calc.CalculateAgentMetrics(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "mission store unavailable"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (m Metrics) System(c *gin.Context) {
	out, err := m.calc.CalculateSystemMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "mission store unavailable"})
		return
	}
	c.JSON(http.StatusOK, out)
}
