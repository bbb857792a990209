package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"energy-sizing/internal/api/models"
	"energy-sizing/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrUnknownPreset is returned when a preset id has no file in the preset directory.
var ErrUnknownPreset = errors.New("unknown preset")

// PresetHandler lists and resolves scenario presets (examples/scenarios/*.yaml).
type PresetHandler struct {
	presetDir string
	logger    *zap.Logger
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(presetDir string, logger *zap.Logger) *PresetHandler {
	// Convert to absolute path for reliability
	if abs, err := filepath.Abs(presetDir); err == nil {
		presetDir = abs
	}
	logger = logger.Named("presets")
	logger.Info("using preset directory", zap.String("dir", presetDir))
	return &PresetHandler{presetDir: presetDir, logger: logger}
}

// Dir returns the preset directory path
func (h *PresetHandler) Dir() string {
	return h.presetDir
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []models.PresetInfo{}

	entries, err := os.ReadDir(h.presetDir)
	if err != nil {
		h.logger.Warn("failed to read preset directory", zap.String("dir", h.presetDir), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"presets": presets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(h.presetDir, entry.Name())
		info, err := loadPresetInfo(path, entry.Name())
		if err != nil {
			h.logger.Warn("skipping invalid preset", zap.String("file", path), zap.Error(err))
			continue
		}
		presets = append(presets, *info)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].ID < presets[j].ID })

	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

// Load returns the microgrid section of preset id, decoded onto the defaults.
// An empty id yields the defaults.
func (h *PresetHandler) Load(id string) (config.MicrogridConfig, error) {
	if id == "" {
		return config.Default().Microgrid, nil
	}
	// Ids are bare file names; anything path-like is rejected.
	if id != filepath.Base(id) || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return config.MicrogridConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	path := filepath.Join(h.presetDir, strings.TrimSuffix(id, ".yaml")+".yaml")
	if _, err := os.Stat(path); err != nil {
		return config.MicrogridConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return config.LoadMicrogridFile(path)
}

func loadPresetInfo(path, filename string) (*models.PresetInfo, error) {
	m, err := config.LoadMicrogridFile(path)
	if err != nil {
		return nil, err
	}
	// Extract ID from filename (e.g., "remote_island.yaml" -> "remote_island")
	id := strings.TrimSuffix(filename, ".yaml")
	name := m.Name
	if name == "" {
		name = id
	}
	return &models.PresetInfo{
		ID:          id,
		Name:        name,
		Description: m.Description,
		File:        filename,
		Specs: models.PresetSpecs{
			LoadProfile:        m.LoadProfile,
			PeakLoadKW:         m.PeakLoadKW,
			PVCapacityKW:       m.PVCapacityKW,
			WindCapacityKW:     m.WindCapacityKW,
			BatteryCapacityKWh: m.BatteryCapacityKWh,
			DieselCapacityKW:   m.DieselCapacityKW,
		},
	}, nil
}
