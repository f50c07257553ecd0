package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zenpay/internal/models"
)

type fakeSettler struct {
	intents map[string]*models.TopUpIntent
}

func (f *fakeSettler) FindByID(id string) (*models.TopUpIntent, error) {
	if i, ok := f.intents[id]; ok {
		return i, nil
	}
	return nil, errors.New("record not found")
}

func (f *fakeSettler) FindByProviderID(providerID string) (*models.TopUpIntent, error) {
	for _, i := range f.intents {
		if i.ProviderID == providerID {
			return i, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeSettler) mark(id, status string) (bool, error) {
	i, ok := f.intents[id]
	if !ok {
		return false, errors.New("record not found")
	}
	if i.Status != models.IntentPending {
		return false, nil
	}
	i.Status = status
	return true, nil
}

func (f *fakeSettler) MarkPaid(id string) (bool, error)   { return f.mark(id, models.IntentPaid) }
func (f *fakeSettler) MarkFailed(id string) (bool, error) { return f.mark(id, models.IntentFailed) }

type fakeNotifier struct {
	notified []string
}

func (f *fakeNotifier) PaymentSucceeded(intent *models.TopUpIntent) {
	f.notified = append(f.notified, intent.ID)
}

func newCallbackFixture() (*PaymentCallbackHandler, *fakeSettler, *fakeNotifier) {
	settler := &fakeSettler{intents: map[string]*models.TopUpIntent{
		"ORD-1": {ID: "ORD-1", ProviderID: "yk-9", Status: models.IntentPending},
	}}
	notifier := &fakeNotifier{}
	return NewPaymentCallbackHandler(settler, notifier, nil, zap.NewNop()), settler, notifier
}

func post(t *testing.T, h echo.HandlerFunc, body string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/payment/callback/x", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec.Code
}

func TestCryptoBotCallbackSettles(t *testing.T) {
	h, settler, notifier := newCallbackFixture()

	body := `{"update_type":"invoice_paid","payload":{"status":"paid","payload":"ORD-1"}}`
	assert.Equal(t, http.StatusOK, post(t, h.CryptoBotCallback, body))

	assert.Equal(t, models.IntentPaid, settler.intents["ORD-1"].Status)
	assert.Equal(t, []string{"ORD-1"}, notifier.notified)

	// Duplicate delivery notifies once.
	post(t, h.CryptoBotCallback, body)
	assert.Len(t, notifier.notified, 1)
}

func TestCryptoBotCallbackIgnoresOtherUpdates(t *testing.T) {
	h, settler, notifier := newCallbackFixture()

	post(t, h.CryptoBotCallback, `{"update_type":"invoice_created","payload":{"status":"active","payload":"ORD-1"}}`)
	assert.Equal(t, models.IntentPending, settler.intents["ORD-1"].Status)
	assert.Empty(t, notifier.notified)
}

func TestYooKassaCallbackByMetadata(t *testing.T) {
	h, settler, notifier := newCallbackFixture()

	body := `{"event":"payment.succeeded","object":{"id":"yk-9","status":"succeeded","metadata":{"order_id":"ORD-1"}}}`
	assert.Equal(t, http.StatusOK, post(t, h.YooKassaCallback, body))
	assert.Equal(t, models.IntentPaid, settler.intents["ORD-1"].Status)
	assert.Equal(t, []string{"ORD-1"}, notifier.notified)
}

func TestYooKassaCallbackFallsBackToProviderID(t *testing.T) {
	h, settler, _ := newCallbackFixture()

	body := `{"event":"payment.canceled","object":{"id":"yk-9","status":"canceled","metadata":{}}}`
	post(t, h.YooKassaCallback, body)
	assert.Equal(t, models.IntentFailed, settler.intents["ORD-1"].Status)
}

func TestCallbackBadBody(t *testing.T) {
	h, _, _ := newCallbackFixture()
	assert.Equal(t, http.StatusBadRequest, post(t, h.CryptoBotCallback, `{`))
	assert.Equal(t, http.StatusBadRequest, post(t, h.YooKassaCallback, `{`))
}
