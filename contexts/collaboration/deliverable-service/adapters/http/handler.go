package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"meridian/contexts/collaboration/deliverable-service/application/commands"
	"meridian/contexts/collaboration/deliverable-service/application/queries"
	"meridian/contexts/collaboration/deliverable-service/domain/entities"
	httptransport "meridian/contexts/collaboration/deliverable-service/transport/http"
)

type Handler struct {
	Submit  commands.SubmitDeliverableUseCase
	Review  commands.ReviewSubmissionUseCase
	Queries queries.QueryUseCase
	Logger  *slog.Logger
}

func (h Handler) SubmitDeliverableHandler(
	ctx context.Context,
	actorID string,
	campaignID string,
	req httptransport.SubmitDeliverableRequest,
) (httptransport.SubmissionResponse, error) {
	item, err := h.Submit.Execute(ctx, commands.SubmitDeliverableCommand{
		ActorID:       actorID,
		CampaignID:    campaignID,
		BrandID:       req.BrandID,
		DeliverableID: req.DeliverableID,
		SubmissionURL: req.SubmissionURL,
		Metadata:      req.Metadata,
	})
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}
	return httptransport.SubmissionResponse{Submission: mapSubmission(item)}, nil
}

func (h Handler) ReviewSubmissionHandler(
	ctx context.Context,
	actorID string,
	submissionID string,
	req httptransport.ReviewSubmissionRequest,
) (httptransport.ReviewResponse, error) {
	item, err := h.Review.Execute(ctx, commands.ReviewSubmissionCommand{
		SubmissionID: submissionID,
		ActorID:      actorID,
		BrandID:      req.BrandID,
		Action:       entities.ReviewAction(req.Action),
		Feedback:     req.Feedback,
	})
	if err != nil {
		return httptransport.ReviewResponse{}, err
	}
	return httptransport.ReviewResponse{Review: mapReview(item)}, nil
}

func (h Handler) DeliverableProgressHandler(ctx context.Context, campaignID, creatorID string) (httptransport.DeliverableProgressResponse, error) {
	progress, err := h.Queries.GetDeliverableStatuses(ctx, campaignID, creatorID)
	if err != nil {
		return httptransport.DeliverableProgressResponse{}, err
	}
	allApproved, err := h.Queries.AllDeliverablesApproved(ctx, campaignID, creatorID)
	if err != nil {
		return httptransport.DeliverableProgressResponse{}, err
	}
	items := make([]httptransport.DeliverableProgressDTO, 0, len(progress))
	for _, entry := range progress {
		items = append(items, httptransport.DeliverableProgressDTO{
			DeliverableID:      entry.Deliverable.DeliverableID,
			DeliverableIndex:   entry.Deliverable.DeliverableIndex,
			Title:              entry.Deliverable.Title,
			Type:               entry.Deliverable.Type,
			State:              string(entry.State),
			LatestSubmissionID: entry.LatestSubmissionID,
			SubmissionCount:    entry.SubmissionCount,
		})
	}
	return httptransport.DeliverableProgressResponse{Items: items, AllApproved: allApproved}, nil
}

func (h Handler) ListSubmissionsHandler(ctx context.Context, campaignID, creatorID string) (httptransport.ListSubmissionsResponse, error) {
	items, err := h.Queries.ListSubmissions(ctx, campaignID, creatorID)
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	result := make([]httptransport.SubmissionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapSubmission(item))
	}
	return httptransport.ListSubmissionsResponse{Items: result}, nil
}

func (h Handler) ListReviewsHandler(ctx context.Context, submissionID string) (httptransport.ListReviewsResponse, error) {
	items, err := h.Queries.ListReviews(ctx, submissionID)
	if err != nil {
		return httptransport.ListReviewsResponse{}, err
	}
	result := make([]httptransport.ReviewDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapReview(item))
	}
	return httptransport.ListReviewsResponse{Items: result}, nil
}

func mapSubmission(item entities.Submission) httptransport.SubmissionDTO {
	return httptransport.SubmissionDTO{
		SubmissionID:  item.SubmissionID,
		CampaignID:    item.CampaignID,
		DeliverableID: item.DeliverableID,
		CreatorID:     item.CreatorID,
		SubmissionURL: item.SubmissionURL,
		Metadata:      item.Metadata,
		SubmittedAt:   item.SubmittedAt.Format(time.RFC3339),
	}
}

func mapReview(item entities.Review) httptransport.ReviewDTO {
	return httptransport.ReviewDTO{
		ReviewID:     item.ReviewID,
		SubmissionID: item.SubmissionID,
		Action:       string(item.Action),
		Feedback:     item.Feedback,
		ReviewerID:   item.ReviewerID,
		CreatedAt:    item.CreatedAt.Format(time.RFC3339),
	}
}
