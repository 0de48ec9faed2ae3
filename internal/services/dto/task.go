package dto

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type CreateTaskResponse struct {
	Status string `json:"status"`
	TaskID string `json:"task_id"`
}

type TaskEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskBoard groups a class's tasks by the requesting student's progress.
type TaskBoard struct {
	Todo       []TaskEntry `json:"todo"`
	InProgress []TaskEntry `json:"in_progress"`
	Done       []TaskEntry `json:"done"`
}

type SetTaskStatusRequest struct {
	Status string `json:"status" validate:"required,task-status"`
}

type TaskFileResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name,omitempty"`
	URL          string `json:"url"`
}

type UploadFilesResponse struct {
	Status   string             `json:"status"`
	Uploaded []TaskFileResponse `json:"uploaded"`
	Errors   []string           `json:"errors,omitempty"`
}
