package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mkowal/todoapi/internal/models"
	"github.com/mkowal/todoapi/internal/services"
)

type TodoHandler struct {
	todos *services.TodoService
}

func NewTodoHandler(todos *services.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

type createTodoRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type todoResponse struct {
	Todo *models.Todo `json:"todo"`
}

type todoListResponse struct {
	Todos []*models.Todo `json:"todos"`
}

// todoID parses the id path parameter. An unparseable id gets the same 404
// as a missing todo.
func todoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The creator is always the caller; the request cannot assign one.
	todo, err := h.todos.Create(r.Context(), account.ID, req.Text, req.Completed)
	if errors.Is(err, services.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	todos, err := h.todos.List(r.Context(), account.ID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if todos == nil {
		todos = []*models.Todo{}
	}

	writeJSON(w, http.StatusOK, todoListResponse{Todos: todos})
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.todos.Get(r.Context(), account.ID, id)
	if errors.Is(err, services.ErrTodoNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todoResponse{Todo: todo})
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.todos.Update(r.Context(), account.ID, id, services.TodoPatch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if errors.Is(err, services.ErrTodoNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if errors.Is(err, services.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todoResponse{Todo: todo})
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.todos.Delete(r.Context(), account.ID, id)
	if errors.Is(err, services.ErrTodoNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todoResponse{Todo: todo})
}
