package chi

import (
	"net/http"

	"github.com/luuzuriaga/bookstore/customer"
)

type customerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newCustomerResponse(c customer.Customer) customerResponse {
	return customerResponse{ID: c.ID, Name: c.Name, Email: c.Email}
}

func getCustomers(customerService customer.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := customerService.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		result := make([]customerResponse, 0, len(all))
		for _, c := range all {
			result = append(result, newCustomerResponse(c))
		}
		writeJSON(w, http.StatusOK, result)
	})
}

func getCustomer(customerService customer.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			badRequest(w, "%s", err)
			return
		}
		c, err := customerService.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newCustomerResponse(c))
	})
}

func postCustomers(customerService customer.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cr customerRequest
		if err := decode(r, &cr); err != nil {
			badRequest(w, "%s", err)
			return
		}
		c, err := customerService.Create(r.Context(), cr.Name, cr.Email)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newCustomerResponse(c))
	})
}

func putCustomer(customerService customer.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			badRequest(w, "%s", err)
			return
		}
		var cr customerRequest
		if err := decode(r, &cr); err != nil {
			badRequest(w, "%s", err)
			return
		}
		c, err := customerService.Update(r.Context(), id, cr.Name, cr.Email)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newCustomerResponse(c))
	})
}

func deleteCustomer(customerService customer.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			badRequest(w, "%s", err)
			return
		}
		if err := customerService.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
