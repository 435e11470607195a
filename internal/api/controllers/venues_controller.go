package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/services"
	"nearby/pkg/middleware"
	"nearby/pkg/utils"
)

type VenuesController struct {
	venueService services.VenueServiceInterface
}

func NewVenuesController(venueService services.VenueServiceInterface) *VenuesController {
	return &VenuesController{
		venueService: venueService,
	}
}

// GetVenues resolves nearby venues for the request. Coordinates fall
// back to the IP-derived position, the venue type falls back to a
// time-of-day default (coffee 05:00-16:59, drinks otherwise), matching
// the behavior clients already rely on.
func (v *VenuesController) GetVenues(c *gin.Context) {
	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")
	venueTypeStr := c.Query("venueType")
	modifier := c.Query("modifier")

	hour := -1
	var asOf time.Time
	if dateHeader := c.GetHeader("Date"); dateHeader != "" {
		if t, err := http.ParseTime(dateHeader); err == nil {
			asOf = t
			hour = t.Hour()
		}
	}
	if isoTime := c.Query("isoTime"); isoTime != "" {
		t, err := time.Parse(time.RFC3339, isoTime)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid ISO time format")
			return
		}
		asOf = t
		hour = t.Hour()
	}

	var latitude, longitude float64
	haveLocation := false
	if latStr != "" && lonStr != "" {
		var err error
		latitude, err = strconv.ParseFloat(latStr, 64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid latitude")
			return
		}
		longitude, err = strconv.ParseFloat(lonStr, 64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid longitude")
			return
		}
		haveLocation = true
	} else if lat, ok := c.Get(middleware.GeoLatitudeKey); ok {
		if lon, ok := c.Get(middleware.GeoLongitudeKey); ok {
			latitude = lat.(float64)
			longitude = lon.(float64)
			haveLocation = true
		}
	}

	if venueTypeStr == "" && hour >= 0 {
		if hour >= 5 && hour < 17 {
			venueTypeStr = string(db_models.VenueTypeCoffee)
		} else {
			venueTypeStr = string(db_models.VenueTypeDrinks)
		}
	}

	if !haveLocation || venueTypeStr == "" {
		utils.RespondError(c, http.StatusBadRequest, "Location information or venue type is missing from the request")
		return
	}

	venueType, err := db_models.ParseVenueType(venueTypeStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	venues, err := v.venueService.ResolveVenues(c.Request.Context(), request_models.VenueQuery{
		Latitude:  latitude,
		Longitude: longitude,
		VenueType: venueType,
		Modifier:  modifier,
		AsOf:      asOf,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, venues, "Venues fetched successfully")
}

func (v *VenuesController) CastVote(c *gin.Context) {
	venueID := c.Param("id")
	if venueID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Venue ID is required")
		return
	}

	var req request_models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Vote kind is required")
		return
	}

	userID := c.GetString("user_id")
	if err := v.venueService.CastVote(c.Request.Context(), venueID, userID, req.Kind); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Vote recorded")
}
