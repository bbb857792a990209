package handlers

import (
	"net/http"

	"energy-sizing/internal/api/models"
	"energy-sizing/internal/model"

	"github.com/gin-gonic/gin"
)

var archetypeDescriptions = map[model.LoadArchetype]string{
	model.ArchetypeCommercial:  "Low at night, high during business hours.",
	model.ArchetypeIndustrial:  "Relatively flat baseload around the clock.",
	model.ArchetypeResidential: "Morning and evening peaks.",
}

// ListArchetypes handles GET /api/v1/archetypes. Shapes are normalized to
// peak load (load) or nameplate capacity (pv, wind).
func ListArchetypes(c *gin.Context) {
	archetypes := make([]models.ArchetypeInfo, 0, len(model.Archetypes))
	for _, a := range model.Archetypes {
		p, _ := a.LoadProfile()
		archetypes = append(archetypes, models.ArchetypeInfo{
			Name:        string(a),
			Description: archetypeDescriptions[a],
			Load:        p[:],
		})
	}
	pv, wind := model.PVProfile, model.WindProfile
	c.JSON(http.StatusOK, gin.H{
		"archetypes": archetypes,
		"pv":         pv[:],
		"wind":       wind[:],
	})
}
