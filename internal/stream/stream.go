// Package stream serves rendered frames as an MJPEG HTTP stream.
package stream

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hybridgroup/mjpeg"
	"github.com/rs/cors"
)

// MJPEG is an HTTP server pushing JPEG frames to connected clients.
type MJPEG struct {
	stream *mjpeg.Stream
	port   int
}

// New creates an MJPEG stream server for the given port.
func New(port int) *MJPEG {
	return &MJPEG{
		stream: mjpeg.NewStream(),
		port:   port,
	}
}

// Start serves the stream in a background goroutine.
func (s *MJPEG) Start() {
	go func() {
		router := mux.NewRouter()
		router.HandleFunc("/", s.stream.ServeHTTP)

		handler := cors.New(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
		}).Handler(router)

		addr := fmt.Sprintf("0.0.0.0:%d", s.port)
		slog.Info("Starting MJPEG stream", "addr", addr)

		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("MJPEG server stopped", "error", err)
		}
	}()
}

// Update pushes a new JPEG frame to all clients.
func (s *MJPEG) Update(jpegData []byte) {
	s.stream.UpdateJPEG(jpegData)
}
