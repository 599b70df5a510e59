package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RenderDocument accepts a document payload and streams back the PDF.
// Recovered layout conditions are surfaced as response headers so callers
// can flag the document for follow-up without parsing the body.
func (s *Server) RenderDocument(c *gin.Context) {
	var req renderDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	domainReq, apiErr := req.toDomain()
	if apiErr != nil {
		AbortWithError(c, apiErr)
		return
	}

	result, err := s.docs.Render(c.Request.Context(), domainReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Header("X-Content-Overflow", strconv.FormatBool(result.ContentOverflow))
	c.Header("X-Terms-Clipped", strconv.FormatBool(result.TermsClipped))
	c.Data(http.StatusOK, "application/pdf", result.Bytes)
}
