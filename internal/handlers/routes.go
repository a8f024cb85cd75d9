package handlers

import (
	"net/http"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/middleware"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// Routes bundles the handlers and access middleware mounted under APIBasePath
type Routes struct {
	Auth    *middleware.AuthMiddleware
	RBAC    *middleware.RBACMiddleware
	Ratings *RatingHandler
	Scores  *ScoreHandler
	Audit   *AuditHandler
}

// Register mounts every API route on mux
func (rt Routes) Register(mux *http.ServeMux) {
	raters := rt.guard(models.UserTypeRater)
	ratersAndAdmins := rt.guard(models.UserTypeRater, models.UserTypeAdmin)
	staff := rt.guard(models.UserTypeRater, models.UserTypeAdmin, models.UserTypeSecretariat)
	admins := rt.guard(models.UserTypeAdmin)

	mux.Handle("POST "+APIBasePath+"/ratings", raters(rt.Ratings.SubmitRatings))
	mux.Handle("GET "+APIBasePath+"/ratings/check", ratersAndAdmins(rt.Ratings.CheckExisting))
	mux.Handle("DELETE "+APIBasePath+"/ratings/reset", ratersAndAdmins(rt.Ratings.ResetRatings))
	mux.Handle("GET "+APIBasePath+"/ratings/candidate/{candidateId}", staff(rt.Ratings.ListByCandidate))
	mux.Handle("GET "+APIBasePath+"/ratings/rater/{raterId}", staff(rt.Ratings.ListByRater))

	mux.Handle("GET "+APIBasePath+"/scores/{candidateId}", staff(rt.Scores.GetCandidateScores))
	mux.Handle("GET "+APIBasePath+"/rankings/{itemNumber}", staff(rt.Scores.GetRanking))
	mux.Handle("GET "+APIBasePath+"/competencies/applicable/{vacancyId}", staff(rt.Scores.GetApplicableCompetencies))

	mux.Handle("GET "+APIBasePath+"/admin/rating-logs", admins(rt.Audit.ListRatingLogs))
	mux.Handle("GET "+APIBasePath+"/admin/rating-logs/stats", admins(rt.Audit.GetRatingLogStats))
	mux.Handle("GET "+APIBasePath+"/admin/rating-logs/batches/{batchId}", admins(rt.Audit.GetBatch))
}

func (rt Routes) guard(userTypes ...string) func(http.HandlerFunc) http.Handler {
	require := rt.RBAC.RequireUserType(userTypes...)
	return func(h http.HandlerFunc) http.Handler {
		return rt.Auth.Authenticate(require(h))
	}
}
