// Package controllers holds the HTTP handlers. Each controller is a thin
// orchestration layer: decode and validate the request, call the store
// through the read-through cache where the operation is cached, apply the
// write-invalidation policy on mutations, and map errors to statuses.
package controllers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

// UserIDKey is the request-context key under which the auth middleware
// stores the authenticated user's id (ObjectID hex).
const UserIDKey = contextKey("userID")

type messageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// WriteError emits the uniform {"message": ...} error body.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, messageResponse{Message: message})
}

// callerID extracts the authenticated user's ObjectID from the request
// context. The auth middleware guarantees presence on protected routes;
// a failure here means a route was wired without it.
func callerID(r *http.Request) (primitive.ObjectID, bool) {
	hex, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
