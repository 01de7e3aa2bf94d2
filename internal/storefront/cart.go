package storefront

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/lumaqa/lumacheck/internal/fixtures"
	"go.uber.org/zap"
)

const (
	cartPath     = "/checkout/cart/"
	discountRate = 0.2
)

var (
	estimateCountries = []string{"United States", "Canada", "United Kingdom"}
	estimateRegions   = []string{"Alabama", "Alaska", "Arizona", "California", "New York", "Texas"}
)

type cartContent struct {
	Lines     []CartLine
	Subtotal  float64
	Discount  float64
	Total     float64
	Coupon    string
	Countries []string
	Regions   []string
	Empty     string
}

// parseQty reads a positive quantity, defaulting to 1 when absent
func parseQty(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid quantity %q", raw)
	}
	return n, nil
}

// lineID reads the cart line id of a data-post form or a path value
func lineID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrUnknownLine
	}
	return id, nil
}

// couponValid reports whether code is a catalog coupon the store accepts
func (s *Server) couponValid(code string) bool {
	for _, c := range s.catalog.Coupons {
		if strings.EqualFold(c.Code, code) {
			return c.Kind == fixtures.CouponValid
		}
	}
	return false
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Snapshot(sessionID(r))
	subtotal := sess.Subtotal()
	discount := 0.0
	if sess.Coupon != "" {
		discount = subtotal * discountRate
	}
	s.render.render(w, sess, page{
		name:      "cart",
		title:     "Shopping Cart",
		bodyClass: "checkout-cart-index",
		content: cartContent{
			Lines:     sess.Cart,
			Subtotal:  subtotal,
			Discount:  discount,
			Total:     subtotal - discount,
			Coupon:    sess.Coupon,
			Countries: estimateCountries,
			Regions:   estimateRegions,
			Empty:     msgEmptyCart,
		},
	})
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	p, ok := s.productBySKU(r.PathValue("sku"))
	if !ok {
		s.notFound(w, r)
		return
	}

	size, color := r.PostFormValue("size"), r.PostFormValue("color")
	if !p.Equipment && (size == "" || color == "") {
		s.redirect(w, r, p.Path(), Flash{Kind: FlashNotice, Text: msgChooseOptions})
		return
	}
	qty, err := parseQty(r.PostFormValue("qty"))
	if err != nil || qty == 0 {
		s.redirect(w, r, back(r, p.Path()), Flash{Kind: FlashError, Text: "Please enter a quantity greater than 0."})
		return
	}

	_ = s.store.Update(sessionID(r), func(sess *Session) error {
		sess.AddLine(p, size, color, qty)
		return nil
	})
	s.logger.Debug("added to cart", zap.String("sku", p.SKU), zap.String("size", size), zap.String("color", color), zap.Int("qty", qty))
	s.redirect(w, r, back(r, p.Path()), Flash{Kind: FlashSuccess, Text: msgAddedToCart(p.Name)})
}

// removeLine drops the posted line and returns to target
func (s *Server) removeLine(w http.ResponseWriter, r *http.Request, target string) {
	id, err := lineID(r.PostFormValue("id"))
	if err == nil {
		err = s.store.Update(sessionID(r), func(sess *Session) error { return sess.RemoveLine(id) })
	}
	if err != nil {
		s.logger.Debug("failed to remove cart line", zap.Error(err))
	}
	s.redirect(w, r, target)
}

func (s *Server) handleCartDelete(w http.ResponseWriter, r *http.Request) {
	s.removeLine(w, r, cartPath)
}

func (s *Server) handleSidebarRemove(w http.ResponseWriter, r *http.Request) {
	s.removeLine(w, r, back(r, cartPath))
}

// setQty sets a line quantity, removing the line at zero
func setQty(sess *Session, id, qty int) error {
	if qty == 0 {
		return sess.RemoveLine(id)
	}
	line, err := sess.Line(id)
	if err != nil {
		return err
	}
	line.Qty = qty
	return nil
}

func (s *Server) handleSidebarQty(w http.ResponseWriter, r *http.Request) {
	id, err := lineID(r.PostFormValue("id"))
	if err == nil {
		var qty int
		if qty, err = parseQty(r.PostFormValue("qty")); err == nil {
			err = s.store.Update(sessionID(r), func(sess *Session) error { return setQty(sess, id, qty) })
		}
	}
	if err != nil {
		s.redirect(w, r, back(r, cartPath), Flash{Kind: FlashError, Text: err.Error()})
		return
	}
	s.redirect(w, r, back(r, cartPath))
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	err := s.store.Update(sessionID(r), func(sess *Session) error {
		for _, line := range append([]CartLine(nil), sess.Cart...) {
			raw, ok := r.PostForm[fmt.Sprintf("cart[%d][qty]", line.ID)]
			if !ok || len(raw) == 0 {
				continue
			}
			qty, err := parseQty(raw[0])
			if err != nil {
				return err
			}
			if err := setQty(sess, line.ID, qty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.redirect(w, r, cartPath, Flash{Kind: FlashError, Text: err.Error()})
		return
	}
	s.redirect(w, r, cartPath)
}

func (s *Server) handleCouponPost(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("remove") == "1" {
		_ = s.store.Update(sessionID(r), func(sess *Session) error {
			sess.Coupon = ""
			return nil
		})
		s.redirect(w, r, cartPath, Flash{Kind: FlashSuccess, Text: msgCouponCanceled})
		return
	}

	code := strings.TrimSpace(r.PostFormValue("coupon_code"))
	if !s.couponValid(code) {
		s.redirect(w, r, cartPath, Flash{Kind: FlashError, Text: msgCouponInvalid(code)})
		return
	}
	_ = s.store.Update(sessionID(r), func(sess *Session) error {
		sess.Coupon = code
		return nil
	})
	s.redirect(w, r, cartPath, Flash{Kind: FlashSuccess, Text: msgCouponApplied(code)})
}

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	id, err := lineID(r.PathValue("id"))
	var line CartLine
	if err == nil {
		err = s.store.Update(sessionID(r), func(sess *Session) error {
			l, err := sess.Line(id)
			if err != nil {
				return err
			}
			line = *l
			return nil
		})
	}
	if err != nil {
		s.redirect(w, r, cartPath)
		return
	}

	s.showProduct(w, r, productContent{
		Product: line.Product,
		Related: s.related(line.Product),
		Action:  fmt.Sprintf("/checkout/cart/updateItemOptions/id/%d/", line.ID),
		Edit:    true,
		Size:    line.Size,
		Color:   line.Color,
		Qty:     line.Qty,
	})
}

func (s *Server) handleUpdateItemOptions(w http.ResponseWriter, r *http.Request) {
	id, err := lineID(r.PathValue("id"))
	if err != nil {
		s.redirect(w, r, cartPath)
		return
	}
	qty, err := parseQty(r.PostFormValue("qty"))
	if err != nil {
		s.redirect(w, r, cartPath, Flash{Kind: FlashError, Text: err.Error()})
		return
	}

	var name string
	err = s.store.Update(sessionID(r), func(sess *Session) error {
		line, err := sess.Line(id)
		if err != nil {
			return err
		}
		if size := r.PostFormValue("size"); size != "" {
			line.Size = size
		}
		if color := r.PostFormValue("color"); color != "" {
			line.Color = color
		}
		name = line.Product.Name
		return setQty(sess, id, qty)
	})
	if errors.Is(err, ErrUnknownLine) {
		s.redirect(w, r, cartPath)
		return
	}
	s.redirect(w, r, cartPath, Flash{Kind: FlashSuccess, Text: msgCartUpdated(name)})
}
