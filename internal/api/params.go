package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination reads page and per_page query parameters, clamping them to
// sane bounds. Invalid or missing values fall back to page 1 and the given
// default page size.
func ParsePagination(c *gin.Context, defaultPerPage, maxPerPage int) (page, perPage int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
