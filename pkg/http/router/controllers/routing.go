package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/kotarute/kotarute/pkg/http/router/routerhelper"

	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/routes/fastest", api.fastestRoute)
	group.POST("/routes/restricted", api.restrictedRoute)
	group.POST("/routes/environmental", api.environmentalRoute)
	group.GET("/vertices/nearest", api.nearestVertex)
}

// fastestRoute godoc
//
//	@Summary		compute the fastest driving route between two intersections.
//	@Description	returns the fastest driving route plus an edge-disjoint alternative when one exists.
//	@Tags			routes
//	@Param			origin		query	string	true	"origin vertex id or code"
//	@Param			destination	query	string	true	"destination vertex id or code"
//	@Produce		json
//	@Success		200
//	@Failure		400
//	@Failure		404
//	@Failure		500
//	@Router			/routes/fastest [get]
func (api *routingAPI) fastestRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()

	origin := query.Get("origin")
	if origin == "" {
		api.BadRequestResponse(w, r, errors.New("origin is required"))
		return
	}
	destination := query.Get("destination")
	if destination == "" {
		api.BadRequestResponse(w, r, errors.New("destination is required"))
		return
	}

	route, err := api.routingService.FastestRoute(origin, destination)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewDrivingRouteResponse(api.routingService, route)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// restrictedRoute godoc
//
//	@Summary		compute the fastest driving route honoring avoid lists and an optional waypoint.
//	@Description	vertices and segments in the avoid lists are excluded for the duration of the search.
//	@Tags			routes
//	@Accept			json
//	@Produce		json
//	@Success		200
//	@Failure		400
//	@Failure		404
//	@Failure		500
//	@Router			/routes/restricted [post]
func (api *routingAPI) restrictedRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request restrictedRouteRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	leg, err := api.routingService.RestrictedRoute(request.Origin, request.Destination,
		request.AvoidNodes, request.AvoidSegments, request.IncludeNode)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewRestrictedRouteResponse(api.routingService, leg)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// environmentalRoute godoc
//
//	@Summary		compute a park-and-walk route under a walking budget.
//	@Description	drives to a parking intersection and walks the rest, keeping the walk within max_walk_time.
//	@Tags			routes
//	@Accept			json
//	@Produce		json
//	@Success		200
//	@Failure		400
//	@Failure		404
//	@Failure		500
//	@Router			/routes/environmental [post]
func (api *routingAPI) environmentalRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request environmentalRouteRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	route, err := api.routingService.EnvironmentalRoute(request.Origin, request.Destination,
		request.MaxWalkTime, request.AvoidNodes, request.AvoidSegments)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewEnvironmentalRouteResponse(api.routingService, route)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// nearestVertex godoc
//
//	@Summary		find the graph vertex nearest to a coordinate.
//	@Tags			vertices
//	@Param			lat	query	number	true	"latitude"
//	@Param			lon	query	number	true	"longitude"
//	@Produce		json
//	@Success		200
//	@Failure		400
//	@Failure		404
//	@Failure		500
//	@Router			/vertices/nearest [get]
func (api *routingAPI) nearestVertex(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}

	id, code, err := api.routingService.NearestVertex(lat, lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewNearestVertexResponse(id, code)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
