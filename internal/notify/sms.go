package notify

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type SMS struct {
	api  messageCreator
	from string
}

func NewSMS(accountSID, authToken, from string) *SMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMS{api: client.Api, from: from}
}

func (s *SMS) NotifyCompletion(_ context.Context, req *models.LaundryRequest) error {
	if req.Phone == "" {
		logrus.WithField("request_id", req.ID).Debug("no phone on laundry request, skipping sms")
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(req.Phone)
	params.SetFrom(s.from)
	params.SetBody(fmt.Sprintf("Uni-Ease: your laundry request %s (%d items) is ready for pickup.", req.ID, len(req.Items)))

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("sms: %w", err)
	}

	entry := logrus.WithField("request_id", req.ID)
	if resp != nil && resp.Sid != nil {
		entry = entry.WithField("sid", *resp.Sid)
	}
	entry.Info("completion sms sent")
	return nil
}
