package routes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	Method string
	URL    string
	Body   string
}

// fakeDriver plays the browser: every navigation or submit is reported back
// to the interceptor the way the page response hook does it.
type fakeDriver struct {
	interceptor *Interceptor

	mu       sync.Mutex
	requests []request

	status   int
	visitErr error
	// redirect, when set, is observed after each visit as a follow-up GET.
	redirect string
}

func (d *fakeDriver) record(r request) {
	d.mu.Lock()
	d.requests = append(d.requests, r)
	d.mu.Unlock()
}

func (d *fakeDriver) Visit(_ context.Context, url string) error {
	if d.visitErr != nil {
		return d.visitErr
	}
	d.record(request{Method: "GET", URL: url})
	go func() {
		d.interceptor.Observe("GET", url, 200)
		if d.redirect != "" {
			d.interceptor.Observe("GET", d.redirect, 200)
		}
	}()
	return nil
}

func (d *fakeDriver) Submit(_ context.Context, url, body string) error {
	d.record(request{Method: "POST", URL: url, Body: body})
	go d.interceptor.Observe("POST", url, 200)
	return nil
}

func (d *fakeDriver) Fetch(_ context.Context, method, url, body string) (int, error) {
	d.record(request{Method: method, URL: url, Body: body})
	return d.status, nil
}

func (d *fakeDriver) Requests() []request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]request(nil), d.requests...)
}

func newTestClient(t *testing.T, base string) (*Client, *fakeDriver) {
	t.Helper()
	interceptor := newTestInterceptor()
	driver := &fakeDriver{interceptor: interceptor, status: 200}
	client, err := NewClient(base, driver, interceptor, WithTimeout(time.Second))
	require.NoError(t, err)
	return client, driver
}

func TestNewClient_RequiresAbsoluteBase(t *testing.T) {
	_, err := NewClient("/relative", &fakeDriver{}, newTestInterceptor())
	require.Error(t, err)
}

func TestClient_Resolve(t *testing.T) {
	tests := []struct {
		base string
		ref  string
		want string
	}{
		{"https://magento.softwaretestingboard.com/", "/juno-jacket.html", "https://magento.softwaretestingboard.com/juno-jacket.html"},
		{"https://magento.softwaretestingboard.com/", "/women/tops-women.html?product_list_limit=", "https://magento.softwaretestingboard.com/women/tops-women.html?product_list_limit="},
		{"https://magento.softwaretestingboard.com/", "https://other.test/x", "https://other.test/x"},
		{"http://localhost:8080/luma/", "/checkout/cart/", "http://localhost:8080/luma/checkout/cart/"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			client, _ := newTestClient(t, tt.base)
			assert.Equal(t, tt.want, client.Resolve(tt.ref))
		})
	}
}

func TestClient_VisitAndWait_UsesRoutePattern(t *testing.T) {
	// GIVEN a client on the Luma demo store
	client, driver := newTestClient(t, "https://shop.test/")

	// WHEN visiting the Juno Jacket PDP by key only
	hit, err := client.VisitAndWait(context.Background(), JunoJacketPDP)

	// THEN the route pattern is visited and the wait resolves on it
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/juno-jacket.html", hit.URL)
	want := []request{{Method: "GET", URL: "https://shop.test/juno-jacket.html"}}
	if diff := cmp.Diff(want, driver.Requests()); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_VisitAndWait_RootUnderBasePath(t *testing.T) {
	// GIVEN a storefront mounted below a path
	client, driver := newTestClient(t, "https://shop.example.com/luma/")

	// WHEN visiting the home page by key
	hit, err := client.VisitAndWait(context.Background(), LoadPage)

	// THEN the base path is visited and resolves the root route
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/luma/", hit.URL)
	assert.Equal(t, []request{{Method: "GET", URL: "https://shop.example.com/luma/"}}, driver.Requests())
}

func TestClient_Do_RootUnderBasePath(t *testing.T) {
	client, _ := newTestClient(t, "https://shop.example.com/luma/")
	interceptor := client.Interceptor()

	hit, err := client.Do(context.Background(), LoadPage, func() error {
		interceptor.Observe("GET", "https://shop.example.com/", 200)
		interceptor.Observe("GET", "https://shop.example.com/luma/", 200)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/luma/", hit.URL)
}

func TestClient_VisitAndWait_ExplicitURL(t *testing.T) {
	client, _ := newTestClient(t, "https://shop.test/")

	hit, err := client.VisitAndWait(context.Background(), SearchResult, "/catalogsearch/result/?q=+Jacket")

	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/catalogsearch/result/?q=+Jacket", hit.URL)
}

func TestClient_VisitAndWait_UnknownKey(t *testing.T) {
	client, driver := newTestClient(t, "https://shop.test/")

	_, err := client.VisitAndWait(context.Background(), "Nope")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRoute))
	assert.Empty(t, driver.Requests())
}

func TestClient_VisitAndWait_VisitError(t *testing.T) {
	client, driver := newTestClient(t, "https://shop.test/")
	driver.visitErr = errors.New("net::ERR_NAME_NOT_RESOLVED")

	_, err := client.VisitAndWait(context.Background(), LoadPage)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERR_NAME_NOT_RESOLVED")
}

func TestClient_VisitAndWait_TimesOutWhenRouteNeverResolves(t *testing.T) {
	// GIVEN a page that redirects somewhere the route does not describe
	interceptor := newTestInterceptor()
	driver := &fakeDriver{interceptor: interceptor, status: 200}
	client, err := NewClient("https://shop.test/", driver, interceptor, WithTimeout(30*time.Millisecond))
	require.NoError(t, err)

	// WHEN expecting the multi-shipping page but visiting the login page
	_, err = client.VisitAndWait(context.Background(), MultiShippingPage, "/customer/account/login/")

	// THEN the wait is bounded by the client timeout
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_Do_RegistersBeforeAction(t *testing.T) {
	client, _ := newTestClient(t, "https://shop.test/")
	interceptor := client.Interceptor()

	// The action reports the response synchronously, before Do could
	// possibly register the alias if it did so afterwards.
	hit, err := client.Do(context.Background(), AddToCartResult, func() error {
		interceptor.Observe("POST", "https://shop.test/checkout/cart/add/uenc/x/product/1/", 200)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, AddToCartResult, hit.Alias)
}

func TestClient_Do_ActionError(t *testing.T) {
	client, _ := newTestClient(t, "https://shop.test/")

	_, err := client.Do(context.Background(), DeleteResult, func() error {
		return errors.New("element is not visible")
	})

	require.EqualError(t, err, "element is not visible")
}

func TestClient_DoRoute(t *testing.T) {
	// GIVEN a limiter route built for a listing the registry does not know
	client, _ := newTestClient(t, "https://shop.test/")
	interceptor := client.Interceptor()
	route, err := NewRoute(Limiter, "GET", "/men/tops-men.html?product_list_limit=")
	require.NoError(t, err)

	// WHEN the action changes the limiter on that listing
	hit, err := client.DoRoute(context.Background(), route, func() error {
		interceptor.Observe("GET", "https://shop.test/women/tops-women.html?product_list_limit=36", 200)
		interceptor.Observe("GET", "https://shop.test/men/tops-men.html?product_list_limit=36", 200)
		return nil
	})

	// THEN only the adapted pattern resolves the alias
	require.NoError(t, err)
	assert.Equal(t, "https://shop.test/men/tops-men.html?product_list_limit=36", hit.URL)
	assert.Equal(t, 0, interceptor.Pending(Limiter))
}

func TestClient_SendRequest(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "ok", status: 200},
		{name: "redirect left at its last hop", status: 302, wantErr: ErrUnexpectedStatus},
		{name: "server error", status: 503, wantErr: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, driver := newTestClient(t, "https://shop.test/")
			driver.status = tt.status

			err := client.SendRequest(context.Background(), "/customer/account/logout/", "post", "")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []request{{Method: "POST", URL: "https://shop.test/customer/account/logout/"}}, driver.Requests())
		})
	}
}

func TestClient_FormRequest(t *testing.T) {
	client, driver := newTestClient(t, "https://shop.test/")

	hit, err := client.FormRequest(context.Background(), "/review/product/post/id/1380/", "nickname=Jane&title=Perfect")

	require.NoError(t, err)
	assert.Equal(t, "POST", hit.Method)
	assert.Equal(t, "https://shop.test/review/product/post/id/1380/", hit.URL)
	assert.Equal(t, "nickname=Jane&title=Perfect", driver.Requests()[0].Body)
	assert.Equal(t, 0, client.Interceptor().Pending(hit.Alias), "one-off alias is forgotten")
}
