package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/aurorafx/sceneimport/internal/dispatcher"
	"github.com/aurorafx/sceneimport/internal/httpclient"
	"github.com/aurorafx/sceneimport/internal/importer"
	"github.com/aurorafx/sceneimport/internal/importer/objimporter"
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/sceneio"
	"github.com/aurorafx/sceneimport/pkg/bytesize"
)

// RegisterRoutes registers every operation this service exposes. Each
// request gets a fresh Dispatcher: the dispatcher holds per-request
// mutable state (current scene, property overrides), so importing two
// requests concurrently against one Dispatcher would race.
func RegisterRoutes(api huma.API, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	huma.Register(api, huma.Operation{
		OperationID: "import-asset",
		Method:      http.MethodPost,
		Path:        "/v1/import",
		Summary:     "Decode and post-process a 3D asset",
		Description: "Runs one Import Dispatcher pass over a local path or remote URL. Never returns the decoded scene graph itself, only the outcome.",
	}, func(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
		return handleImport(ctx, logger, input)
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-formats",
		Method:      http.MethodGet,
		Path:        "/v1/formats",
		Summary:     "List the file extensions the importer registry can decode",
	}, func(ctx context.Context, _ *struct{}) (*FormatsOutput, error) {
		return handleFormats()
	})
}

// ImportInput is the POST /v1/import request body.
type ImportInput struct {
	Body struct {
		// Path is a local filesystem path. Mutually exclusive with RemoteURL.
		Path string `json:"path,omitempty" doc:"Local filesystem path to import"`
		// RemoteURL is an http(s):// or file:// URL. Mutually exclusive with Path.
		RemoteURL string `json:"remote_url,omitempty" doc:"Remote URL to fetch and import"`
		// Flags is a list of canonical pipeline flag names (core.Flags.String() form).
		Flags []string `json:"flags,omitempty" doc:"Post-processing flags to request, by name"`
	}
}

// ImportOutput is the POST /v1/import response body.
type ImportOutput struct {
	Body struct {
		RequestID string `json:"request_id"`
		// Error is empty on success, or the dispatcher's error string.
		Error string `json:"error,omitempty"`
		// Memory is nil on failure.
		Memory *MemoryReport `json:"memory,omitempty"`
		DurationMs int64 `json:"duration_ms"`
	}
}

// MemoryReport renders scene.MemoryRequirements in both raw bytes and
// human-readable form.
type MemoryReport struct {
	TotalBytes int64  `json:"total_bytes"`
	Total      string `json:"total"`
	Nodes      int64  `json:"nodes_bytes"`
	Meshes     int64  `json:"meshes_bytes"`
	Materials  int64  `json:"materials_bytes"`
	Animations int64  `json:"animations_bytes"`
	Textures   int64  `json:"textures_bytes"`
	Cameras    int64  `json:"cameras_bytes"`
	Lights     int64  `json:"lights_bytes"`
}

func handleImport(ctx context.Context, logger *slog.Logger, input *ImportInput) (*ImportOutput, error) {
	requestID := uuid.New().String()
	log := logger.With(slog.String("request_id", requestID))

	body := input.Body
	hasPath := body.Path != ""
	hasRemote := body.RemoteURL != ""
	if hasPath == hasRemote {
		return nil, huma.Error400BadRequest("exactly one of path or remote_url is required")
	}

	flags, err := core.ParseFlagNames(body.Flags)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	d := dispatcher.NewBuilder().WithLogger(log).Build()

	target := body.Path
	if hasRemote {
		d.SetIOHandler(sceneio.NewRemoteIO(httpclient.DefaultConfig(), log))
		target = body.RemoteURL
	}
	d.RegisterLoader(objimporter.New())

	start := time.Now()
	sc := d.ReadFile(target, flags)
	elapsed := time.Since(start)

	out := &ImportOutput{}
	out.Body.RequestID = requestID
	out.Body.DurationMs = elapsed.Milliseconds()

	if sc == nil {
		out.Body.Error = d.GetErrorString()
		log.Warn("import failed", slog.String("error", out.Body.Error))
		return out, nil
	}

	req := d.GetMemoryRequirements()
	out.Body.Memory = &MemoryReport{
		TotalBytes: req.Total,
		Total:      bytesize.Format(bytesize.Size(req.Total)),
		Nodes:      req.Nodes,
		Meshes:     req.Meshes,
		Materials:  req.Materials,
		Animations: req.Animations,
		Textures:   req.Textures,
		Cameras:    req.Cameras,
		Lights:     req.Lights,
	}
	log.Info("import succeeded",
		slog.Duration("duration", elapsed),
		slog.Int64("total_bytes", req.Total),
	)
	return out, nil
}

// FormatsOutput is the GET /v1/formats response body.
type FormatsOutput struct {
	Body struct {
		Extensions []string `json:"extensions"`
	}
}

func handleFormats() (*FormatsOutput, error) {
	reg := importer.NewRegistry()
	reg.Register(objimporter.New())

	out := &FormatsOutput{}
	for _, imp := range reg.All() {
		out.Body.Extensions = append(out.Body.Extensions, imp.Extensions()...)
	}
	return out, nil
}
