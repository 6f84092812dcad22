package chi

import (
	"net/http"

	"github.com/luuzuriaga/bookstore/book"
)

/*
* Representa o livro na camada web, por isso ele tem as tags json
 */
type bookRequest struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

type bookResponse struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

func newBookResponse(b book.Book) bookResponse {
	return bookResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Price:  b.Price,
		Stock:  b.Stock,
	}
}

func getBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := bookService.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		result := make([]bookResponse, 0, len(all))
		for _, b := range all {
			result = append(result, newBookResponse(b))
		}
		writeJSON(w, http.StatusOK, result)
	})
}

func getBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			badRequest(w, "%s", err)
			return
		}
		b, err := bookService.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newBookResponse(b))
	})
}

func postBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br bookRequest
		if err := decode(r, &br); err != nil {
			badRequest(w, "%s", err)
			return
		}
		b, err := bookService.Create(r.Context(), br.Title, br.Author, br.Price, br.Stock)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newBookResponse(b))
	})
}

func putBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			badRequest(w, "%s", err)
			return
		}
		var br bookRequest
		if err := decode(r, &br); err != nil {
			badRequest(w, "%s", err)
			return
		}
		b, err := bookService.Update(r.Context(), id, br.Title, br.Author, br.Price, br.Stock)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newBookResponse(b))
	})
}

func deleteBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			badRequest(w, "%s", err)
			return
		}
		if err := bookService.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
