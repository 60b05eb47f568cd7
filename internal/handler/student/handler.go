package student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/students/backend/internal/model/student"
	studentService "github.com/zhouzirui/students/backend/internal/service/student"
	"github.com/zhouzirui/students/backend/pkg/utils"
)

// Querier is the read side of the student service used by the handler.
type Querier interface {
	FindAll() ([]student.Student, error)
	FindByMatriculationNumber(mnr int) (student.Student, error)
}

// Handler 学生目录的HTTP处理器
type Handler struct {
	students Querier
}

// New 创建学生处理器
func New(students Querier) *Handler {
	return &Handler{
		students: students,
	}
}

// RegisterRoutes 注册学生相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/students", h.handleListStudents)
	r.Get("/students/{mnr}", h.handleGetStudent)
}

// handleListStudents 列出所有学生
func (h *Handler) handleListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.FindAll()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, students)
}

// handleGetStudent 按学号查询学生
func (h *Handler) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "mnr")
	mnr, err := strconv.Atoi(raw)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "matriculation number must be an integer")
		return
	}

	found, err := h.students.FindByMatriculationNumber(mnr)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, found)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, studentService.ErrStudentNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, studentService.ErrNotReady):
		utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
