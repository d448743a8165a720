package main

import (
	"net/http"

	"villagecore/internal/apperrors"
	"villagecore/internal/catalog"
	"villagecore/internal/domain"

	"github.com/gin-gonic/gin"
)

var buildingNames = map[string]catalog.BuildingKind{
	"headquarters": catalog.Headquarters,
	"woodcutter":   catalog.Woodcutter,
	"clay_pit":     catalog.ClayPit,
	"iron_mine":    catalog.IronMine,
	"farm":         catalog.Farm,
	"storage":      catalog.Storage,
	"barracks":     catalog.Barracks,
}

var unitNames = map[string]catalog.UnitKind{
	"archer":     catalog.Archer,
	"swordsman":  catalog.Swordsman,
	"knight":     catalog.Knight,
	"skirmisher": catalog.Skirmisher,
	"nobleman":   catalog.Nobleman,
	"spy":        catalog.Spy,
}

func parseBuildingKind(name string) (catalog.BuildingKind, bool) {
	k, ok := buildingNames[name]
	return k, ok
}

func parseUnitKind(name string) (catalog.UnitKind, bool) {
	k, ok := unitNames[name]
	return k, ok
}

type buildRequest struct {
	Building string `json:"building" binding:"required"`
}

type trainRequest struct {
	Unit  string `json:"unit" binding:"required"`
	Count int    `json:"count" binding:"required"`
}

type sendRequest struct {
	TargetVillageID int64          `json:"targetVillageId" binding:"required"`
	Units           map[string]int `json:"units" binding:"required"`
}

func (r sendRequest) toUnits() (domain.Units, error) {
	units := domain.Units{}
	for name, count := range r.Units {
		kind, ok := parseUnitKind(name)
		if !ok {
			return nil, apperrors.New(apperrors.KindValueError, "unknown unit kind %q", name)
		}
		units[kind] = count
	}
	return units, nil
}

// userID extracts the authenticated caller's id. There is no real session
// layer in this demonstration surface, so it is read from a header the
// operator supplies directly, standing in for the external auth
// collaborator spec.md §1 assumes.
func userID(c *gin.Context) string {
	return c.GetHeader("X-Player-ID")
}

// writeError maps an apperrors.Kind to an HTTP status and writes the
// response body. Unknown error types fall through to 500.
func writeError(c *gin.Context, err error) {
	ae, ok := apperrors.As(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch ae.Kind {
	case apperrors.KindValueError, apperrors.KindSelfTarget, apperrors.KindBadRequest:
		status = http.StatusBadRequest
	case apperrors.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperrors.KindForbidden:
		status = http.StatusForbidden
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindQueueFull, apperrors.KindMaxLevelReached, apperrors.KindBarracksRequired,
		apperrors.KindInsufficientRes, apperrors.KindInsufficientPop, apperrors.KindInsufficientUnit:
		status = http.StatusConflict
	case apperrors.KindInternal:
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"error": ae.Message, "kind": string(ae.Kind)})
}
