package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"irisweb/models"
)

var featureFields = [4]string{"sepal_length", "sepal_width", "petal_length", "petal_width"}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		history, err := h.predictions.RecentForUser(r.Context(), user.ID, 0)
		if err != nil {
			slog.Error("Failed to load history", "user_id", user.ID, "error", err)
		}
		h.render(w, h.predictTmpl, pageData{
			Title:   "Prediksi",
			User:    user,
			Flash:   h.sessions.PopFlash(w, r),
			History: history,
		})
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Keep the raw strings: on a parse failure they are echoed back so the
	// user can correct them.
	values := map[string]string{}
	for _, field := range featureFields {
		values[field] = r.FormValue(field)
	}

	var features [4]float64
	parseErr := false
	for i, field := range featureFields {
		f, err := strconv.ParseFloat(values[field], 64)
		if err != nil {
			parseErr = true
			break
		}
		features[i] = f
	}

	data := pageData{
		Title:  "Prediksi",
		User:   user,
		Values: values,
	}

	if parseErr {
		data.Flash = &models.Flash{Message: "Semua input harus berupa angka.", Category: "error"}
	} else {
		predID, label := h.classifier.Classify(features)
		if err := h.predictions.Append(r.Context(), user.ID, features, predID, label); err != nil {
			slog.Error("Failed to save prediction", "user_id", user.ID, "error", err)
			h.flashAndRedirect(w, r, "Terjadi kesalahan. Silakan coba lagi.", "error", "/prediksi")
			return
		}
		data.Result = &predictionResult{PredictionID: predID, Label: label}
	}

	history, err := h.predictions.RecentForUser(r.Context(), user.ID, 0)
	if err != nil {
		slog.Error("Failed to load history", "user_id", user.ID, "error", err)
	}
	data.History = history

	h.render(w, h.predictTmpl, data)
}

type predictRequest struct {
	SepalLength float64 `json:"sepal_length"`
	SepalWidth  float64 `json:"sepal_width"`
	PetalLength float64 `json:"petal_length"`
	PetalWidth  float64 `json:"petal_width"`
}

type predictResponse struct {
	Status     string `json:"status"`
	Prediction int    `json:"prediction"`
	Label      string `json:"label"`
}

// PredictAPI is the stateless JSON endpoint: no session, no persistence,
// just a classification.
func (h *Handler) PredictAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"message": "invalid request body",
		})
		return
	}

	predID, label := h.classifier.Classify([4]float64{
		req.SepalLength, req.SepalWidth, req.PetalLength, req.PetalWidth,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(predictResponse{
		Status:     "success",
		Prediction: predID,
		Label:      label,
	})
}
