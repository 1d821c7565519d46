package healthcheck

import (
	"encoding/json"
	"net/http"

	"github.com/Jukeman9/Gokart-racing/common/utils"
)

type HealthCheckServer struct {
	checkers map[string]HealthCheckHandler
	port     string
}

type HealthChecks struct {
	Status bool
	Name   string
}

type HealthCheckHttpResponse struct {
	Checks     []HealthChecks
	StatusCode int
}

type HealthCheckHandler func() (err error, ok bool)

func NewHealthCheckServer(port string) *HealthCheckServer {
	return &HealthCheckServer{
		checkers: make(map[string]HealthCheckHandler),
		port:     port,
	}
}

func (server *HealthCheckServer) Register(name string, handler HealthCheckHandler) {
	server.checkers[name] = handler
}

// HttpHandler serves the aggregated check report; it can be mounted on
// any router in addition to the standalone Listen server.
func (server *HealthCheckServer) HttpHandler(w http.ResponseWriter, r *http.Request) {
	res := HealthCheckHttpResponse{
		Checks:     make([]HealthChecks, 0),
		StatusCode: 200,
	}

	for name, checker := range server.checkers {
		err, checkerRes := checker()

		if err == nil {
			res.Checks = append(res.Checks, HealthChecks{
				Status: checkerRes,
				Name:   name,
			})
		} else {
			res.StatusCode = http.StatusInternalServerError
		}
	}

	data, err := json.Marshal(res)
	utils.Check(err, "Failed to marshal response")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	w.Write(data)
}

func (server *HealthCheckServer) Listen() {
	http.HandleFunc("/health", server.HttpHandler)

	err := http.ListenAndServe(":"+server.port, nil)
	utils.Check(err, "Failed to listen on :"+server.port)
}
