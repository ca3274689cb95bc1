package handler

import (
	"errors"

	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// prefs is the process-local preference state, wired in main.
var prefs *helper.PreferenceStore

func SetupPreferences(store *helper.PreferenceStore) {
	prefs = store
}

// CreateEvent persists an organizer submission. The capacity validator has
// already normalized and gated the input in the validate middleware.
func CreateEvent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.EventInput)

	db := database.DB

	var event model.Event
	if err := copier.Copy(&event, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not create event", err)
	}
	event.Slug = helper.GenerateUniqueEventSlug(db, input.Title)

	if err := db.Create(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not create event", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

// EditEvent re-validates and applies an update. Client-side clamping is
// advisory; this is the authoritative gate.
func EditEvent(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)
	input := c.Locals("input").(model.EventInput)

	db := database.DB

	var event model.Event
	if err := db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal error", err)
	}

	if err := copier.Copy(&event, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal error", err)
	}

	if err := db.Save(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not update event", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func GetEvents(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.Event{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal error", err)
	}

	limit := utils.Ptr(c.QueryInt("limit", 20))
	page := utils.Ptr(c.QueryInt("page", 1))

	var events []model.Event
	if err := utils.ApplyPagination(query, limit, page).Order("date ASC").Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal error", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       events,
		Limit:      limit,
		Page:       page,
		TotalCount: total,
	})
}

func GetEventById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	db := database.DB

	var event model.Event
	if err := db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal error", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func FavoriteEvent(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)
	claim := helper.GetClaimsFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", errors.New("guest"))
	}

	var count int64
	database.DB.Model(&model.Event{}).Where("id = ?", id).Count(&count)
	if count == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", errors.New("unknown event"))
	}

	prefs.AddFavorite(claim.UserId, uint(id))
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"favorited": true})
}

func UnfavoriteEvent(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)
	claim := helper.GetClaimsFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", errors.New("guest"))
	}

	prefs.RemoveFavorite(claim.UserId, uint(id))
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"favorited": false})
}

func GetFavoriteEvents(c *fiber.Ctx) error {
	claim := helper.GetClaimsFromToken(c)
	if claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", errors.New("guest"))
	}

	ids := prefs.Favorites(claim.UserId)
	var events []model.Event
	if len(ids) > 0 {
		if err := database.DB.Where("id IN ?", ids).Find(&events).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal error", err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, events)
}
