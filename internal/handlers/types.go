package handlers

// CreateURLRequest is the request body for shortening a URL.
type CreateURLRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
	}
}

// URLRecordBody is the stored record as rendered to clients.
type URLRecordBody struct {
	ID       uint64 `doc:"Store-assigned identifier"   example:"1"                                   json:"id"`
	URL      string `doc:"The original URL"            example:"https://example.com/very/long/path"  json:"url"`
	Code     string `doc:"The fixed-width short code"  example:"ZZZZZZZb"                            json:"code"`
	ShortURL string `doc:"Resolution URL for the code" example:"http://localhost:8888/long/ZZZZZZZb" json:"shortUrl"`
}

// CreateURLResponse is the response for a successfully stored URL.
type CreateURLResponse struct {
	Location string `doc:"Resolution path of the new short code" header:"Location"`
	Body     URLRecordBody
}

// CodeRequest addresses a record by its short code.
type CodeRequest struct {
	Code string `doc:"The short code" example:"ZZZZZZZb" path:"code"`
}

// LongURLResponse returns the stored record for a code.
type LongURLResponse struct {
	Body URLRecordBody
}

// RedirectBody describes the redirect that was issued.
type RedirectBody struct {
	URL            string `doc:"Redirect target"                    json:"url"`
	Permanent      bool   `doc:"Whether the redirect is permanent"  json:"permanent"`
	PreserveMethod bool   `doc:"Whether the method must be kept"    json:"preserveMethod"`
}

// RedirectResponse redirects to the stored URL.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The original URL" header:"Location"`
	Body     RedirectBody
}
