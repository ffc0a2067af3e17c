package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON object from the body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("request body is required")
		}
		return apperror.Validation("malformed JSON body").WithDetails(map[string]string{"body": err.Error()})
	}
	return nil
}

func listQuery(r *http.Request) repositories.ListQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return repositories.ListQuery{
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      page,
		Limit:     limit,
	}
}

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}
