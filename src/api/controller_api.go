package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"dumbwaiter/src/types"
)

const ServiceName = "controller"

// Controller is what the endpoints need from the motion controller.
type Controller interface {
	Status() types.Status
	TopFloor() int
	SetRequestedFloor(floor int)
	SetLastSeenFloor(floor int)
	SetStopRequested()
}

// HTTPController adds the controller's endpoints. It is the caller that validates floors
// against the top floor; the controller itself accepts any value.
type HTTPController struct {
	Controller  Controller
	ServiceName string
	log         zerolog.Logger
}

func NewHTTPController(controller Controller, log zerolog.Logger) *HTTPController {
	return &HTTPController{
		Controller:  controller,
		ServiceName: ServiceName,
		log:         log.With().Str("component", "http").Logger(),
	}
}

func (c *HTTPController) AddEndpoints(router *mux.Router) {
	sub := router.PathPrefix("/" + c.ServiceName).Subrouter()
	sub.HandleFunc("/status", c.StatusEndpoint).Methods(http.MethodGet)
	sub.HandleFunc("/requested/{floor}", c.RequestedFloorEndpoint).Methods(http.MethodPut)
	sub.HandleFunc("/lastseen/{floor}", c.LastSeenFloorEndpoint).Methods(http.MethodPut)
	sub.HandleFunc("/stop", c.StopEndpoint).Methods(http.MethodPost)
}

func (c *HTTPController) StatusEndpoint(w http.ResponseWriter, r *http.Request) {
	status := c.Controller.Status()
	c.log.Debug().Interface("status", status).Msg("Status requested")
	writeJSON(w, http.StatusOK, status, c.log)
}

func (c *HTTPController) RequestedFloorEndpoint(w http.ResponseWriter, r *http.Request) {
	floor, ok := c.parseFloor(w, r)
	if !ok {
		return
	}
	c.log.Info().Int("floor", floor).Msg("Floor requested over http")
	c.Controller.SetRequestedFloor(floor)
	writeJSON(w, http.StatusOK, c.Controller.Status(), c.log)
}

func (c *HTTPController) LastSeenFloorEndpoint(w http.ResponseWriter, r *http.Request) {
	floor, ok := c.parseFloor(w, r)
	if !ok {
		return
	}
	c.Controller.SetLastSeenFloor(floor)
	writeJSON(w, http.StatusOK, c.Controller.Status(), c.log)
}

func (c *HTTPController) StopEndpoint(w http.ResponseWriter, r *http.Request) {
	c.log.Info().Msg("Stop requested over http")
	c.Controller.SetStopRequested()
	writeJSON(w, http.StatusOK, c.Controller.Status(), c.log)
}

func (c *HTTPController) parseFloor(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := mux.Vars(r)["floor"]
	floor, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{fmt.Sprintf("floor %q is not a number", raw)}, c.log)
		return 0, false
	}
	if top := c.Controller.TopFloor(); floor < 0 || floor > top {
		writeJSON(w, http.StatusBadRequest, errorResponse{fmt.Sprintf("floor %d is outside 0..%d", floor, top)}, c.log)
		return 0, false
	}
	return floor, true
}
