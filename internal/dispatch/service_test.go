package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	campaigndomain "yakalahadi-backend/internal/campaign/domain"
	companydomain "yakalahadi-backend/internal/company/domain"
	markerdomain "yakalahadi-backend/internal/marker/domain"
	"yakalahadi-backend/internal/queue"
	userdomain "yakalahadi-backend/internal/user/domain"
	"yakalahadi-backend/pkg/fcm"
	"yakalahadi-backend/pkg/geo"
)

// ---- fakes ----

type fakeApprovalRepo struct {
	markers map[string]*markerdomain.ApprovalMarker
	results map[string]markerdomain.Result
}

func newFakeApprovalRepo() *fakeApprovalRepo {
	return &fakeApprovalRepo{
		markers: make(map[string]*markerdomain.ApprovalMarker),
		results: make(map[string]markerdomain.Result),
	}
}

func (f *fakeApprovalRepo) Create(ctx context.Context, m *markerdomain.ApprovalMarker) error {
	f.markers[m.ID] = m
	return nil
}

func (f *fakeApprovalRepo) FindByID(ctx context.Context, id string) (*markerdomain.ApprovalMarker, error) {
	return f.markers[id], nil
}

func (f *fakeApprovalRepo) FindUnprocessed(ctx context.Context, limit int) ([]*markerdomain.ApprovalMarker, error) {
	var out []*markerdomain.ApprovalMarker
	for _, m := range f.markers {
		if !m.Processed {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeApprovalRepo) Finalize(ctx context.Context, id string, res markerdomain.Result) error {
	f.markers[id].Processed = true
	f.results[id] = res
	return nil
}

type fakeNoticeRepo struct {
	markers map[string]*markerdomain.NoticeMarker
	results map[string]markerdomain.Result
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{
		markers: make(map[string]*markerdomain.NoticeMarker),
		results: make(map[string]markerdomain.Result),
	}
}

func (f *fakeNoticeRepo) Create(ctx context.Context, m *markerdomain.NoticeMarker) error {
	f.markers[m.ID] = m
	return nil
}

func (f *fakeNoticeRepo) FindByID(ctx context.Context, id string) (*markerdomain.NoticeMarker, error) {
	return f.markers[id], nil
}

func (f *fakeNoticeRepo) FindUnprocessed(ctx context.Context, limit int) ([]*markerdomain.NoticeMarker, error) {
	return nil, nil
}

func (f *fakeNoticeRepo) Finalize(ctx context.Context, id string, res markerdomain.Result) error {
	f.markers[id].Processed = true
	f.results[id] = res
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]*companydomain.Company
}

func (f *fakeCompanyRepo) FindByID(ctx context.Context, id string) (*companydomain.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) FindAll(ctx context.Context) ([]*companydomain.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepo) FindPendingApproval(ctx context.Context) ([]*companydomain.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepo) SetApproved(ctx context.Context, id string, approved bool) error {
	return nil
}
func (f *fakeCompanyRepo) SetCategory(ctx context.Context, id, category string) error    { return nil }
func (f *fakeCompanyRepo) AddCredits(ctx context.Context, id string, amount int) error   { return nil }
func (f *fakeCompanyRepo) SetTotalPurchased(ctx context.Context, id string, v int) error { return nil }
func (f *fakeCompanyRepo) Delete(ctx context.Context, id string) error                   { return nil }

type fakeUserRepo struct {
	users map[string]*userdomain.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*userdomain.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*userdomain.User, error) {
	var out []*userdomain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindNotifiable(ctx context.Context) ([]*userdomain.User, error) {
	var out []*userdomain.User
	for _, u := range f.users {
		if u.FCMToken != "" {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetDisabled(ctx context.Context, id string, disabled bool) error { return nil }

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeCampaignRepo struct {
	campaigns map[string]*campaigndomain.Campaign
	notified  map[string][2]int
}

func (f *fakeCampaignRepo) FindByID(ctx context.Context, id string) (*campaigndomain.Campaign, error) {
	return f.campaigns[id], nil
}

func (f *fakeCampaignRepo) FindAll(ctx context.Context) ([]*campaigndomain.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignRepo) FindUnnotified(ctx context.Context, limit int) ([]*campaigndomain.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

func (f *fakeCampaignRepo) MarkNotified(ctx context.Context, id string, sent, failed int) error {
	f.campaigns[id].Notified = true
	f.notified[id] = [2]int{sent, failed}
	return nil
}

func (f *fakeCampaignRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeDiscountRepo struct {
	discounts map[string]*campaigndomain.Discount
	notified  map[string][2]int
}

func (f *fakeDiscountRepo) FindByID(ctx context.Context, id string) (*campaigndomain.Discount, error) {
	return f.discounts[id], nil
}

func (f *fakeDiscountRepo) FindAll(ctx context.Context) ([]*campaigndomain.Discount, error) {
	return nil, nil
}

func (f *fakeDiscountRepo) FindUnnotified(ctx context.Context, limit int) ([]*campaigndomain.Discount, error) {
	return nil, nil
}

func (f *fakeDiscountRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

func (f *fakeDiscountRepo) MarkNotified(ctx context.Context, id string, sent, failed int) error {
	f.discounts[id].Notified = true
	f.notified[id] = [2]int{sent, failed}
	return nil
}

func (f *fakeDiscountRepo) Delete(ctx context.Context, id string) error { return nil }

type sentPush struct {
	token string
	topic string
	n     fcm.Notification
}

type fakePush struct {
	mu       sync.Mutex
	sent     []sentPush
	failFor  map[string]bool
	topicErr error
}

func (f *fakePush) SendToToken(ctx context.Context, token string, n fcm.Notification) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[token] {
		return "", errors.New("registration-token-not-registered")
	}
	f.sent = append(f.sent, sentPush{token: token, n: n})
	return "projects/p/messages/1", nil
}

func (f *fakePush) SendToTopic(ctx context.Context, topic string, n fcm.Notification) (string, error) {
	if f.topicErr != nil {
		return "", f.topicErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentPush{topic: topic, n: n})
	return "projects/p/messages/topic-1", nil
}

type fakeMail struct {
	sent []string
	err  error
}

func (f *fakeMail) Send(ctx context.Context, to, subject, htmlBody string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, to)
	return "mail-1", nil
}

// ---- fixture ----

type fixture struct {
	svc       *Service
	approvals *fakeApprovalRepo
	notices   *fakeNoticeRepo
	companies *fakeCompanyRepo
	users     *fakeUserRepo
	campaigns *fakeCampaignRepo
	discounts *fakeDiscountRepo
	push      *fakePush
	mail      *fakeMail
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		approvals: newFakeApprovalRepo(),
		notices:   newFakeNoticeRepo(),
		companies: &fakeCompanyRepo{companies: make(map[string]*companydomain.Company)},
		users:     &fakeUserRepo{users: make(map[string]*userdomain.User)},
		campaigns: &fakeCampaignRepo{campaigns: make(map[string]*campaigndomain.Campaign), notified: make(map[string][2]int)},
		discounts: &fakeDiscountRepo{discounts: make(map[string]*campaigndomain.Discount), notified: make(map[string][2]int)},
		push:      &fakePush{failFor: make(map[string]bool)},
		mail:      &fakeMail{},
	}
	f.svc = NewService(f.approvals, f.notices, f.companies, f.users, f.campaigns, f.discounts,
		f.push, f.mail, "genelBildirim", zap.NewNop())
	return f
}

// ---- tests ----

func TestApprovalDispatchApproved(t *testing.T) {
	f := newFixture(t)
	f.companies.companies["C1"] = &companydomain.Company{ID: "C1", Name: "Kebapçı Ali", Email: "ali@example.com"}
	f.users.users["C1"] = &userdomain.User{ID: "C1", FCMToken: "tok-1"}
	f.approvals.Create(context.Background(), &markerdomain.ApprovalMarker{
		ID: "m1", CompanyID: "C1", ApprovalStatus: markerdomain.StatusApproved,
	})

	err := f.svc.HandleCompanyApproval(context.Background(), queue.Task{Kind: queue.KindCompanyApproval, Ref: "m1"})
	require.NoError(t, err)

	require.Len(t, f.push.sent, 1)
	assert.Equal(t, "tok-1", f.push.sent[0].token)
	assert.Equal(t, "✅ Başvurunuz Onaylandı!", f.push.sent[0].n.Title)

	assert.True(t, f.approvals.markers["m1"].Processed)
	res := f.approvals.results["m1"]
	assert.Equal(t, "projects/p/messages/1", res.MessageID)
	assert.True(t, res.EmailSent)
	assert.Empty(t, res.Error)
	assert.Equal(t, []string{"ali@example.com"}, f.mail.sent)
}

func TestApprovalDispatchRejectedCarriesReason(t *testing.T) {
	f := newFixture(t)
	f.companies.companies["C1"] = &companydomain.Company{ID: "C1", Name: "Moda Butik", Email: "butik@example.com"}
	f.users.users["C1"] = &userdomain.User{ID: "C1", FCMToken: "tok-1"}
	f.approvals.Create(context.Background(), &markerdomain.ApprovalMarker{
		ID: "m1", CompanyID: "C1", ApprovalStatus: markerdomain.StatusRejected, Reason: "eksik evrak",
	})

	err := f.svc.HandleCompanyApproval(context.Background(), queue.Task{Ref: "m1"})
	require.NoError(t, err)

	require.Len(t, f.push.sent, 1)
	assert.Equal(t, "❌ Başvurunuz Reddedildi", f.push.sent[0].n.Title)
	assert.Contains(t, f.push.sent[0].n.Body, "eksik evrak")
}

func TestApprovalDispatchNoToken(t *testing.T) {
	f := newFixture(t)
	f.companies.companies["C1"] = &companydomain.Company{ID: "C1", Name: "Kebapçı Ali"}
	f.users.users["C1"] = &userdomain.User{ID: "C1"} // no token
	f.approvals.Create(context.Background(), &markerdomain.ApprovalMarker{
		ID: "m1", CompanyID: "C1", ApprovalStatus: markerdomain.StatusApproved,
	})

	err := f.svc.HandleCompanyApproval(context.Background(), queue.Task{Ref: "m1"})
	require.NoError(t, err, "delivery problems never escape the handler")

	assert.Empty(t, f.push.sent)
	assert.True(t, f.approvals.markers["m1"].Processed)
	assert.NotEmpty(t, f.approvals.results["m1"].Error)
}

func TestApprovalDispatchSkipsProcessedMarker(t *testing.T) {
	f := newFixture(t)
	f.approvals.Create(context.Background(), &markerdomain.ApprovalMarker{
		ID: "m1", CompanyID: "C1", ApprovalStatus: markerdomain.StatusApproved, Processed: true,
	})

	err := f.svc.HandleCompanyApproval(context.Background(), queue.Task{Ref: "m1"})
	require.NoError(t, err)
	assert.Empty(t, f.push.sent, "replayed marker must not send again")
}

func TestApprovalDispatchPushFailureRecorded(t *testing.T) {
	f := newFixture(t)
	f.companies.companies["C1"] = &companydomain.Company{ID: "C1", Name: "Kebapçı Ali", Email: "ali@example.com"}
	f.users.users["C1"] = &userdomain.User{ID: "C1", FCMToken: "dead-token"}
	f.push.failFor["dead-token"] = true
	f.approvals.Create(context.Background(), &markerdomain.ApprovalMarker{
		ID: "m1", CompanyID: "C1", ApprovalStatus: markerdomain.StatusApproved,
	})

	err := f.svc.HandleCompanyApproval(context.Background(), queue.Task{Ref: "m1"})
	require.NoError(t, err)

	res := f.approvals.results["m1"]
	assert.Contains(t, res.Error, "not-registered")
	assert.True(t, res.EmailSent, "email still goes out when the push fails")
}

func TestBulkNoticeBroadcast(t *testing.T) {
	f := newFixture(t)
	f.notices.Create(context.Background(), &markerdomain.NoticeMarker{
		ID: "n1", Title: "Duyuru", Body: "Yeni kampanyalar sizi bekliyor",
	})

	err := f.svc.HandleBulkNotice(context.Background(), queue.Task{Ref: "n1"})
	require.NoError(t, err)

	require.Len(t, f.push.sent, 1)
	assert.Equal(t, "genelBildirim", f.push.sent[0].topic, "empty topic falls back to the broadcast topic")
	assert.True(t, f.notices.markers["n1"].Processed)
	assert.Equal(t, "projects/p/messages/topic-1", f.notices.results["n1"].MessageID)
}

func TestBulkNoticeBroadcastFailure(t *testing.T) {
	f := newFixture(t)
	f.push.topicErr = errors.New("quota exceeded")
	f.notices.Create(context.Background(), &markerdomain.NoticeMarker{ID: "n1", Title: "Duyuru"})

	err := f.svc.HandleBulkNotice(context.Background(), queue.Task{Ref: "n1"})
	require.NoError(t, err)

	assert.True(t, f.notices.markers["n1"].Processed)
	assert.Contains(t, f.notices.results["n1"].Error, "quota")
}

func TestCampaignFanOut(t *testing.T) {
	f := newFixture(t)
	origin := geo.Point{Lat: 41, Lng: 29}
	near := &geo.Point{Lat: 41.001, Lng: 29}

	f.campaigns.campaigns["k1"] = &campaigndomain.Campaign{
		ID: "k1", Category: "food", Title: "https://x/logo.png|Big Sale",
		Body: "Bugün %50 indirim", Location: &origin, Radius: 5000,
	}
	f.users.users["u1"] = &userdomain.User{ID: "u1", FCMToken: "tok-1", Location: near, ReceiveAll: true}
	f.users.users["u2"] = &userdomain.User{ID: "u2", FCMToken: "tok-2", Location: near, SelectedCategories: []string{"food"}}
	f.users.users["u3"] = &userdomain.User{ID: "u3", FCMToken: "tok-3", Location: near, SelectedCategories: []string{"fashion"}}
	f.users.users["u4"] = &userdomain.User{ID: "u4", Location: near, ReceiveAll: true} // no token
	f.push.failFor["tok-2"] = true

	err := f.svc.HandleCampaignCreated(context.Background(), queue.Task{Ref: "k1"})
	require.NoError(t, err)

	assert.Equal(t, [2]int{1, 1}, f.campaigns.notified["k1"], "all sends settle before the counts are written")
	require.Len(t, f.push.sent, 1)
	assert.Equal(t, "Big Sale", f.push.sent[0].n.Title)
	assert.Equal(t, "https://x/logo.png", f.push.sent[0].n.ImageURL)
	assert.True(t, f.campaigns.campaigns["k1"].Notified)
}

func TestDiscountFanOutUsesFixedRadius(t *testing.T) {
	f := newFixture(t)
	origin := geo.Point{Lat: 41, Lng: 29}

	f.discounts.discounts["d1"] = &campaigndomain.Discount{
		ID: "d1", Category: "food", Title: "İndirim", Location: &origin,
	}
	// ~22 km out: inside the fixed 25 km radius even though the discount
	// document carries no radius at all.
	f.users.users["u1"] = &userdomain.User{
		ID: "u1", FCMToken: "tok-1",
		Location:   &geo.Point{Lat: 41.2, Lng: 29},
		ReceiveAll: true,
	}

	err := f.svc.HandleDiscountCreated(context.Background(), queue.Task{Ref: "d1"})
	require.NoError(t, err)

	assert.Equal(t, [2]int{1, 0}, f.discounts.notified["d1"])
}
