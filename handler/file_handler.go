package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/ai-service/service"
	"github.com/coursehub/ai-service/types"
)

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// HandleRegisterFiles records file metadata for later processing.
func (h *FileHandler) HandleRegisterFiles(c *gin.Context) {
	var files []types.FileMetadata
	if err := c.ShouldBindJSON(&files); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "at least one file is required",
		})
		return
	}
	for _, f := range files {
		if f.Filename == "" || f.DownloadURL == "" {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: "filename and download_url are required for every file",
			})
			return
		}
	}

	records, err := h.fileService.RegisterFiles(c.Request.Context(), files)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

func (h *FileHandler) HandleListFiles(c *gin.Context) {
	records, err := h.fileService.ListFiles(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, records)
}

// HandleDeleteFile removes the record, its processed marker and its vectors.
func (h *FileHandler) HandleDeleteFile(c *gin.Context) {
	fileID := c.Param("id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "file id is required",
		})
		return
	}
	if err := h.fileService.DeleteFile(c.Request.Context(), fileID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"file_id": fileID})
}

// HandleProcessFiles embeds every registered file that has not been
// processed yet.
func (h *FileHandler) HandleProcessFiles(c *gin.Context) {
	count, err := h.fileService.ProcessUnprocessedFiles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, types.ProcessFilesResponse{
		ProcessedCount: count,
		Message:        "processed " + strconv.Itoa(count) + " files",
	})
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
