package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dariasel12/palindrome-project/internal/app"
	"github.com/dariasel12/palindrome-project/internal/domain"
)

// --- Generate String ---

type GenerateStringInput struct {
	Body struct {
		Palindrome bool `json:"palindrome" doc:"Whether to generate a palindrome"`
		Length     int  `json:"length,omitempty" default:"6" minimum:"1" maximum:"30" doc:"Length of the string"`
	}
}

// GenerateStringResponse is the API representation of a stored entry.
type GenerateStringResponse struct {
	ID     string `json:"id" doc:"Unique identifier for the generated string"`
	Result string `json:"result" doc:"The generated string"`
}

type GenerateStringOutput struct {
	Body GenerateStringResponse
}

// --- Retrieve String ---

type RetrieveStringInput struct {
	ID string `path:"id" doc:"Identifier returned by generate-string"`
}

// RetrieveStringResponse carries a previously generated string.
type RetrieveStringResponse struct {
	Result string `json:"result" doc:"The stored string"`
}

type RetrieveStringOutput struct {
	Body RetrieveStringResponse
}

// --- Health ---

type HealthOutput struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}

// Register adds all palindrome API routes to the Huma API.
func Register(api huma.API, svc *app.EntryService) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-string",
		Method:      http.MethodPost,
		Path:        "/palindrome/generate-string",
		Summary:     "Generate a palindrome or non-palindrome string",
		Tags:        []string{"Palindrome"},
	}, func(ctx context.Context, input *GenerateStringInput) (*GenerateStringOutput, error) {
		entry, err := svc.Generate(ctx, input.Body.Palindrome, input.Body.Length)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &GenerateStringOutput{Body: GenerateStringResponse{
			ID:     entry.ID,
			Result: entry.Result,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "retrieve-string",
		Method:      http.MethodGet,
		Path:        "/palindrome/retrieve-string/{id}",
		Summary:     "Retrieve a generated string by its ID",
		Tags:        []string{"Palindrome"},
	}, func(ctx context.Context, input *RetrieveStringInput) (*RetrieveStringOutput, error) {
		entry, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &RetrieveStringOutput{Body: RetrieveStringResponse{Result: entry.Result}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness probe",
		Tags:        []string{"Health"},
	}, func(_ context.Context, _ *struct{}) (*HealthOutput, error) {
		out := &HealthOutput{}
		out.Body.Status = "ok"
		return out, nil
	})
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrEntryNotFound) {
		return huma.Error404NotFound("ID not found")
	}

	var lenErr *domain.LengthError
	if errors.As(err, &lenErr) {
		return huma.Error422UnprocessableEntity(lenErr.Error())
	}

	if errors.Is(err, domain.ErrImpossibleConstraint) {
		return huma.Error422UnprocessableEntity(err.Error())
	}

	slog.ErrorContext(ctx, "request failed", slog.Any("error", err))
	return huma.Error500InternalServerError("internal server error")
}
