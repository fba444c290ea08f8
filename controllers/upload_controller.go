package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-nepal/services"
	"hotel-nepal/utils"
)

type UploadController struct {
	Images *services.ImageService
}

func NewUploadController(images *services.ImageService) *UploadController {
	return &UploadController{Images: images}
}

// UploadImage (POST /api/upload-image) stores the multipart "image" part and
// returns its public URL.
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	filename, err := ctrl.Images.Save(fh)
	if errors.Is(err, services.ErrImageTooLarge) {
		utils.JSONError(c, http.StatusBadRequest,
			fmt.Sprintf("File too large. Maximum size is %dMB", ctrl.Images.MaxBytes()>>20))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Image uploaded successfully",
		"imageUrl": services.URLFor(filename),
		"filename": filename,
	})
}
