package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitDeliverableRequest struct {
	BrandID       string            `json:"brand_id"`
	DeliverableID string            `json:"deliverable_id"`
	SubmissionURL string            `json:"submission_url"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type ReviewSubmissionRequest struct {
	BrandID  string `json:"brand_id"`
	Action   string `json:"action"`
	Feedback string `json:"feedback,omitempty"`
}

type SubmissionDTO struct {
	SubmissionID  string            `json:"submission_id"`
	CampaignID    string            `json:"campaign_id"`
	DeliverableID string            `json:"deliverable_id"`
	CreatorID     string            `json:"creator_id"`
	SubmissionURL string            `json:"submission_url"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	SubmittedAt   string            `json:"submitted_at"`
}

type ReviewDTO struct {
	ReviewID     string `json:"review_id"`
	SubmissionID string `json:"submission_id"`
	Action       string `json:"action"`
	Feedback     string `json:"feedback,omitempty"`
	ReviewerID   string `json:"reviewer_id"`
	CreatedAt    string `json:"created_at"`
}

type DeliverableProgressDTO struct {
	DeliverableID      string `json:"deliverable_id"`
	DeliverableIndex   int    `json:"deliverable_index"`
	Title              string `json:"title"`
	Type               string `json:"type"`
	State              string `json:"state"`
	LatestSubmissionID string `json:"latest_submission_id,omitempty"`
	SubmissionCount    int    `json:"submission_count"`
}

type SubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type ReviewResponse struct {
	Review ReviewDTO `json:"review"`
}

type DeliverableProgressResponse struct {
	Items       []DeliverableProgressDTO `json:"items"`
	AllApproved bool                     `json:"all_approved"`
}

type ListSubmissionsResponse struct {
	Items []SubmissionDTO `json:"items"`
}

type ListReviewsResponse struct {
	Items []ReviewDTO `json:"items"`
}
