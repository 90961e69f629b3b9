package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	mwerrors "meshwalk/pkg/errors"
	pkgio "meshwalk/pkg/io"
	"meshwalk/pkg/pipeline"
)

// maxRequestBody caps uploaded STL payloads at 256 MiB.
const maxRequestBody = 256 << 20

// newServeCmd creates the serve command: an HTTP API over the pipeline.
func newServeCmd() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an HTTP API for mesh decomposition",
		Long: `Start an HTTP server exposing the decomposition pipeline.

Endpoints:
  POST /api/v1/decompose   Raw STL body (text or binary), JSON walk result.
                           Query params: max_depth, start.
  GET  /healthz            Liveness check.

Example:
  meshwalk serve --addr :8080
  curl --data-binary @part.stl localhost:8080/api/v1/decompose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(middleware.Recoverer)
			r.Use(middleware.Timeout(5 * time.Minute))

			r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			})
			r.Post("/api/v1/decompose", handleDecompose(runner))

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			logger.Info("listening", "addr", addr)
			printInfo("Serving on %s", addr)

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// handleDecompose runs the full pipeline on the raw STL request body.
func handleDecompose(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		data, err := io.ReadAll(io.LimitReader(req.Body, maxRequestBody))
		if err != nil {
			writeAPIError(w, mwerrors.Wrap(mwerrors.ErrCodeInvalidInput, err, "read request body"))
			return
		}
		if len(data) == 0 {
			writeAPIError(w, mwerrors.New(mwerrors.ErrCodeInvalidInput, "empty request body"))
			return
		}

		opts := pipeline.Options{Start: -1, Source: "http"}
		if v := req.URL.Query().Get("max_depth"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeAPIError(w, mwerrors.New(mwerrors.ErrCodeInvalidInput, "invalid max_depth %q", v))
				return
			}
			opts.MaxDepth = n
		}
		if v := req.URL.Query().Get("start"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeAPIError(w, mwerrors.New(mwerrors.ErrCodeInvalidInput, "invalid start %q", v))
				return
			}
			opts.Start = n
		}

		result, err := runner.Decompose(req.Context(), data, opts)
		if err != nil {
			writeAPIError(w, err)
			return
		}

		res := pkgio.FromWalk(result.Mesh, result.Order)
		res.RunID = result.RunID
		res.MeshHash = result.MeshHash

		w.Header().Set("Content-Type", "application/json")
		if result.Cached {
			w.Header().Set("X-Cache", "hit")
		}
		json.NewEncoder(w).Encode(res)
	}
}

// apiError is the JSON error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeAPIError maps structured error codes onto HTTP statuses.
func writeAPIError(w http.ResponseWriter, err error) {
	code := mwerrors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case mwerrors.ErrCodeInvalidInput,
		mwerrors.ErrCodeFormatUnrecognized,
		mwerrors.ErrCodeTextDecode,
		mwerrors.ErrCodeBinaryDecode:
		status = http.StatusBadRequest
	case mwerrors.ErrCodeNoDecomposition:
		status = http.StatusUnprocessableEntity
	case mwerrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	if code == "" {
		code = mwerrors.ErrCodeInternal
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiError{
		Code:    string(code),
		Message: mwerrors.UserMessage(err),
	})
}
