package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// HandleSettingsGet returns the current settings.
// Route: GET /api/settings
func HandleSettingsGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, err := services.LoadSettings(app)
		if err != nil {
			log.Printf("settings_get: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load settings")
		}
		return e.JSON(http.StatusOK, s)
	}
}

// HandleSettingsSave replaces the settings. Keys missing from the body fall
// back to the current values.
// Route: POST /api/settings
func HandleSettingsSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, err := services.LoadSettings(app)
		if err != nil {
			log.Printf("settings_save: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load settings")
		}

		if err := decodeJSON(e, &s); err != nil {
			return ErrorJSON(e, http.StatusBadRequest, err.Error())
		}

		if err := services.SaveSettings(app, s); err != nil {
			log.Printf("settings_save: %v", err)
			return ErrorJSON(e, http.StatusBadRequest, err.Error())
		}

		log.Printf("settings_save: settings updated")
		SetToast(e, "success", "Settings saved")
		return e.JSON(http.StatusOK, s)
	}
}
