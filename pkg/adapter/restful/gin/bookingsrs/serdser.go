package bookingsrs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/goride/goride/pkg/adapter/restful/gin/serdser"
	"github.com/goride/goride/pkg/core/usecase/bookingsuc"
	"github.com/goride/goride/pkg/core/validation"
)

type rawProposal struct {
	VehicleID string `json:"vehicleId" binding:"required,max=64"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Notes     string `json:"notes" binding:"max=1000"`
}

// DserProposal decodes the booking proposal of c. Missing dates are
// left as zero times, so the use case reports them as required, while
// malformed dates are reported here. The price is never taken from
// the request; it is read from the vehicle by the use case.
func (rs *resource) DserProposal(c *gin.Context) *bookingsuc.Proposal {
	req := &rawProposal{}
	if !serdser.Bind(c, req, binding.JSON) {
		return nil
	}
	var errs map[string]string
	p := &bookingsuc.Proposal{
		VehicleID: req.VehicleID,
		Notes:     req.Notes,
	}
	p.StartDate = parseDate(&errs, "startDate", req.StartDate)
	p.EndDate = parseDate(&errs, "endDate", req.EndDate)
	if !serdser.BadRequest(c, errs) {
		return nil
	}
	return p
}

func parseDate(errs *map[string]string, name, s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := validation.ParseDate(s)
	serdser.Assert(errs, err == nil, name, "Date must be formatted as YYYY-MM-DD")
	return t
}
