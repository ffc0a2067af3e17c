package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-seller-ms/app/utils/renderer"
)

func Health(w http.ResponseWriter, r *http.Request) {
	renderer.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
