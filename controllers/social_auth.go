package controllers

import (
	"strconv"

	"socialstore/models"
	"socialstore/store"
	"socialstore/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SocialAuthController exposes provider links over the management API
type SocialAuthController struct {
	db      *gorm.DB
	storage *store.Storage
}

// NewSocialAuthController creates a new social auth controller
func NewSocialAuthController(db *gorm.DB) *SocialAuthController {
	return &SocialAuthController{db: db, storage: store.NewStorage(db)}
}

type socialAuthResponse struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"user_id"`
	Provider  string         `json:"provider"`
	UID       string         `json:"uid"`
	ExtraData models.JSONMap `json:"extra_data,omitempty"`
}

func toSocialAuthResponse(link models.UserSocialAuth) socialAuthResponse {
	return socialAuthResponse{
		ID:        link.ID,
		UserID:    link.UserID,
		Provider:  link.Provider,
		UID:       link.UID,
		ExtraData: utils.MaskExtraData(link.ExtraData),
	}
}

// GetUserSocialAuths lists a user's provider links, optionally filtered by
// ?provider=
func (c *SocialAuthController) GetUserSocialAuths(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(ctx, "Invalid user id")
		return
	}

	user, err := c.storage.User.GetUser(uint(userID))
	if err != nil {
		utils.InternalError(ctx, "Failed to fetch user")
		return
	}
	if user == nil {
		utils.NotFound(ctx, "User not found")
		return
	}

	links, err := c.storage.User.GetSocialAuthForUser(user, ctx.Query("provider"), 0)
	if err != nil {
		utils.InternalError(ctx, "Failed to fetch social auth links")
		return
	}

	response := make([]socialAuthResponse, 0, len(links))
	for _, link := range links {
		response = append(response, toSocialAuthResponse(link))
	}
	utils.Success(ctx, 200, response)
}

// Disconnect removes a provider link, unless doing so would lock the
// account out
func (c *SocialAuthController) Disconnect(ctx *gin.Context) {
	linkID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(ctx, "Invalid link id")
		return
	}

	var link models.UserSocialAuth
	if err := c.db.First(&link, uint(linkID)).Error; err != nil {
		utils.NotFound(ctx, "Social auth link not found")
		return
	}

	user, err := c.storage.User.GetUser(link.UserID)
	if err != nil || user == nil {
		utils.InternalError(ctx, "Failed to fetch link owner")
		return
	}

	allowed, err := c.storage.User.AllowedToDisconnect(user, link.Provider, link.ID)
	if err != nil {
		utils.InternalError(ctx, "Failed to check disconnect safety")
		return
	}
	if !allowed {
		utils.LogSocialEvent(models.AuditActionWarning, user.ID, link.Provider,
			ctx.ClientIP(), ctx.Request.UserAgent(), false, map[string]interface{}{
				"reason":  "last login method",
				"link_id": link.ID,
			})
		utils.Conflict(ctx, "Cannot disconnect the last login method of a password-less account")
		return
	}

	if err := c.storage.User.Disconnect(&link); err != nil {
		utils.InternalError(ctx, "Failed to disconnect")
		return
	}

	utils.LogSocialEvent(models.AuditActionDisconnect, user.ID, link.Provider,
		ctx.ClientIP(), ctx.Request.UserAgent(), true, map[string]interface{}{
			"link_id": link.ID,
			"uid":     link.UID,
		})
	utils.NoContent(ctx)
}

// CreateCode issues a verification code for an email address
func (c *SocialAuthController) CreateCode(ctx *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	if result := utils.ValidateEmail(body.Email); result.HasErrors() {
		utils.ValidationError(ctx, result.Error())
		return
	}

	code, err := c.storage.Code.MakeCode(body.Email)
	if err != nil {
		if c.storage.IsIntegrityError(err) {
			utils.Conflict(ctx, "Code already issued")
			return
		}
		utils.InternalError(ctx, "Failed to create code")
		return
	}

	utils.Created(ctx, code)
}

// GetCode looks up a verification code
func (c *SocialAuthController) GetCode(ctx *gin.Context) {
	code, err := c.storage.Code.GetCode(ctx.Param("code"))
	if err != nil {
		utils.InternalError(ctx, "Failed to fetch code")
		return
	}
	if code == nil {
		utils.NotFound(ctx, "Code not found")
		return
	}
	utils.Success(ctx, 200, code)
}
