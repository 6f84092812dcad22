package chi

import (
	"net/http"
	"time"

	"github.com/luuzuriaga/bookstore/sale"
)

type saleRequest struct {
	CustomerID int64 `json:"customerId"`
	BookID     int64 `json:"bookId"`
	Quantity   int   `json:"quantity"`
}

type saleResponse struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customerId"`
	BookID     int64     `json:"bookId"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newSaleResponse(s sale.Sale) saleResponse {
	return saleResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		BookID:     s.BookID,
		Quantity:   s.Quantity,
		CreatedAt:  s.CreatedAt,
	}
}

func postSales(saleService sale.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sr saleRequest
		if err := decode(r, &sr); err != nil {
			badRequest(w, "%s", err)
			return
		}
		s, err := saleService.Register(r.Context(), sr.CustomerID, sr.BookID, sr.Quantity)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newSaleResponse(s))
	})
}

func getSales(saleService sale.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := saleService.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		result := make([]saleResponse, 0, len(all))
		for _, s := range all {
			result = append(result, newSaleResponse(s))
		}
		writeJSON(w, http.StatusOK, result)
	})
}

func getSale(saleService sale.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			badRequest(w, "%s", err)
			return
		}
		s, err := saleService.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newSaleResponse(s))
	})
}
