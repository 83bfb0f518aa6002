package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/engine"
	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/repositories"
	"github.com/cbodonnell/stoneworks/pkg/repositories/models"
	"github.com/cbodonnell/stoneworks/pkg/schematic"
	"github.com/cbodonnell/stoneworks/pkg/state"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Engine is the part of engine.Engine served over HTTP.
type Engine interface {
	Stats(ctx context.Context) (state.EngineStats, error)
	Worlds() *world.Registry
	CaptureCell(ctx context.Context, loc world.BlockLocation) (cell.Snapshot, error)
	EnqueueSerialized(loc world.BlockLocation, line string)
	CopyRegion(ctx context.Context, c1, c2 world.BlockLocation, pivot *world.Location) (*schematic.Schematic, error)
	SaveSchematic(ctx context.Context, name string, s *schematic.Schematic) (*models.Schematic, error)
	LoadSchematic(ctx context.Context, name string) (*schematic.Schematic, error)
	ListSchematics(ctx context.Context) ([]*models.Schematic, error)
	DeleteSchematic(ctx context.Context, name string) error
	Paste(s *schematic.Schematic, dest world.BlockLocation, opts schematic.PasteOptions, callback func(schematic.PasteResult)) (uuid.UUID, error)
	Pastes(ctx context.Context) ([]engine.PasteStatus, error)
	CancelPaste(ctx context.Context, id uuid.UUID) (bool, error)
}

type CellResponse struct {
	World    string            `json:"world"`
	X        int               `json:"x"`
	Y        int               `json:"y"`
	Z        int               `json:"z"`
	Snapshot string            `json:"snapshot"`
	Type     string            `json:"type"`
	Data     int8              `json:"data"`
	Aux      map[string]string `json:"aux,omitempty"`
}

type MutationRequest struct {
	World    string `json:"world"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Z        int    `json:"z"`
	Snapshot string `json:"snapshot"`
}

type CreateSchematicRequest struct {
	Name  string `json:"name"`
	World string `json:"world"`
	From  [3]int `json:"from"`
	To    [3]int `json:"to"`
	// Pivot defaults to the minimum corner, and the schematic has no anchor.
	Pivot *[3]float64 `json:"pivot,omitempty"`
}

// PasteRequest places a saved schematic. Without coordinates it is placed at
// the anchor it was copied from.
type PasteRequest struct {
	World      string `json:"world,omitempty"`
	X          *int   `json:"x,omitempty"`
	Y          *int   `json:"y,omitempty"`
	Z          *int   `json:"z,omitempty"`
	SkipSparse bool   `json:"skip_sparse"`
	Rotation   int    `json:"rotation"`
}

type PasteResponse struct {
	ID      string `json:"id"`
	Entries int    `json:"entries"`
}

func HandleGetStats(e Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := e.Stats(r.Context())
		if err != nil {
			log.Error("failed to get stats: %v", err)
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func HandleGetCell(e Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		loc := world.BlockLocation{World: vars["world"]}
		for i, key := range []string{"x", "y", "z"} {
			v, err := strconv.Atoi(vars[key])
			if err != nil {
				http.Error(w, "Coordinates must be integers", http.StatusBadRequest)
				return
			}
			loc.Pos[i] = v
		}

		snapshot, err := e.CaptureCell(r.Context(), loc)
		if err != nil {
			writeError(w, "Failed to capture cell", err)
			return
		}
		writeJSON(w, http.StatusOK, CellResponse{
			World:    loc.World,
			X:        loc.Pos.X(),
			Y:        loc.Pos.Y(),
			Z:        loc.Pos.Z(),
			Snapshot: cell.Serialize(snapshot),
			Type:     snapshot.TypeID(),
			Data:     snapshot.LegacyVariant(),
			Aux:      snapshot.Aux(),
		})
	}
}

func HandleEnqueueMutation(e Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := MutationRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Failed to decode request", http.StatusBadRequest)
			return
		}
		if req.Snapshot == "" {
			http.Error(w, "Snapshot is required", http.StatusBadRequest)
			return
		}
		if !e.Worlds().Has(req.World) {
			http.Error(w, "World not found", http.StatusNotFound)
			return
		}

		e.EnqueueSerialized(world.BlockLocation{World: req.World, Pos: world.Pos{req.X, req.Y, req.Z}}, req.Snapshot)
		w.WriteHeader(http.StatusAccepted)
	}
}

func HandleListSchematics(e Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := e.ListSchematics(r.Context())
		if err != nil {
			log.Error("failed to list schematics: %v", err)
			http.Error(w, "Failed to list schematics", http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []*models.Schematic{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func HandleCreateSchematic(e Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := CreateSchematicRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Failed to decode request", http.StatusBadRequest)
			return
		}
		if err := schematic.ValidateName(req.Name); err != nil {
			http.Error(w, "Name must be 1 to 64 letters, digits, dashes or underscores", http.StatusBadRequest)
			return
		}

		c1 := world.BlockLocation{World: req.World, Pos: world.Pos(req.From)}
		c2 := world.BlockLocation{World: req.World, Pos: world.Pos(req.To)}
		var pivot *world.Location
		if req.Pivot != nil {
			pivot = &world.Location{World: req.World, Vec: mgl64.Vec3(*req.Pivot)}
		}
		s, err := e.CopyRegion(r.Context(), c1, c2, pivot)
		if err != nil {
			writeError(w, "Failed to copy region", err)
			return
		}

		record, err := e.SaveSchematic(r.Context(), req.Name, s)
		if err != nil {
			writeError(w, "Failed to save schematic", err)
			return
		}
		writeJSON(w, http.StatusCreated, record)
	}
}

func HandleDeleteSchematic(e Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := e.DeleteSchematic(r.Context(), mux.Vars(r)["name"]); err != nil {
			writeError(w, "Failed to delete schematic", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandlePasteSchematic(e Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := PasteRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Failed to decode request", http.StatusBadRequest)
			return
		}

		s, err := e.LoadSchematic(r.Context(), mux.Vars(r)["name"])
		if err != nil {
			writeError(w, "Failed to load schematic", err)
			return
		}

		var dest world.BlockLocation
		switch {
		case req.X != nil && req.Y != nil && req.Z != nil:
			dest = world.BlockLocation{World: req.World, Pos: world.Pos{*req.X, *req.Y, *req.Z}}
			if dest.World == "" {
				if anchor, ok := s.Anchor(); ok {
					dest.World = anchor.World
				}
			}
		case req.X == nil && req.Y == nil && req.Z == nil:
			anchor, ok := s.Anchor()
			if !ok {
				http.Error(w, "Schematic has no anchor, coordinates are required", http.StatusBadRequest)
				return
			}
			dest = anchor.Block()
			if req.World != "" {
				dest.World = req.World
			}
		default:
			http.Error(w, "Coordinates must include x, y and z", http.StatusBadRequest)
			return
		}
		if dest.World == "" {
			http.Error(w, "World is required", http.StatusBadRequest)
			return
		}

		opts := schematic.PasteOptions{SkipSparse: req.SkipSparse, Rotation: req.Rotation}
		id, err := e.Paste(s, dest, opts, nil)
		if err != nil {
			writeError(w, "Failed to start paste", err)
			return
		}
		writeJSON(w, http.StatusAccepted, PasteResponse{ID: id.String(), Entries: s.Len()})
	}
}

func HandleListPastes(e Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pastes, err := e.Pastes(r.Context())
		if err != nil {
			writeError(w, "Failed to list pastes", err)
			return
		}
		if pastes == nil {
			pastes = []engine.PasteStatus{}
		}
		writeJSON(w, http.StatusOK, pastes)
	}
}

func HandleCancelPaste(e Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Failed to parse paste id", http.StatusBadRequest)
			return
		}
		removed, err := e.CancelPaste(r.Context(), id)
		if err != nil {
			writeError(w, "Failed to cancel paste", err)
			return
		}
		if !removed {
			http.Error(w, "Paste not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

// writeError maps engine and store errors to a status code.
func writeError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case repositories.IsNotFound(err), errors.Is(err, world.ErrUnknownWorld):
		status = http.StatusNotFound
	case errors.Is(err, world.ErrOutOfBounds),
		errors.Is(err, engine.ErrRegionTooLarge),
		errors.Is(err, schematic.ErrInvalidName),
		errors.Is(err, schematic.ErrOffsetOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, schematic.ErrUnsupportedVersion), errors.Is(err, schematic.ErrCorrupt):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		log.Error("%s: %v", msg, err)
	}
	http.Error(w, msg+": "+err.Error(), status)
}
