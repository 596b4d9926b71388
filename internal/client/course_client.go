package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ULMS-DEV/exam-service/config"
	"github.com/rs/zerolog/log"
)

// ErrCourseServiceUnavailable is returned when the enrollment lookup is used
// before the course service endpoint has been configured.
var ErrCourseServiceUnavailable = errors.New("course service is not configured")

// CourseClient resolves which courses a student is enrolled in. The course
// service is a separate deployment; this client is the only place the exam
// service talks to it.
type CourseClient interface {
	GetEnrollmentsForStudent(ctx context.Context, studentID string) ([]string, error)
}

type enrollmentDTO struct {
	CourseID string `json:"course_id"`
}

type enrollmentsResponse struct {
	Enrollments []enrollmentDTO `json:"enrollments"`
}

type courseClient struct {
	baseURL string
	http    *http.Client
}

func NewCourseClient(cfg *config.Config) CourseClient {
	if cfg.Courses.BaseURL == "" {
		log.Warn().Msg("COURSE_SERVICE_URL not set, student exam listing will be unavailable")
	}
	return &courseClient{
		baseURL: cfg.Courses.BaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *courseClient) GetEnrollmentsForStudent(ctx context.Context, studentID string) ([]string, error) {
	if c.baseURL == "" {
		return nil, ErrCourseServiceUnavailable
	}

	url := fmt.Sprintf("%s/api/v1/students/%s/enrollments", c.baseURL, studentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("course service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("course service returned status %d", resp.StatusCode)
	}

	var body enrollmentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding course service response: %w", err)
	}

	courseIDs := make([]string, 0, len(body.Enrollments))
	for _, e := range body.Enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}
	return courseIDs, nil
}
