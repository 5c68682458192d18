package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nest-Microservices-Learning-Oscar/orders-ms/internal/httpx"
	ord "github.com/Nest-Microservices-Learning-Oscar/orders-ms/internal/order"
)

func createOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: err.Error()})
			return
		}
		out, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

func listOrdersHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q ord.PageQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: err.Error()})
			return
		}
		out, err := svc.FindAll(c.Request.Context(), q)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getOrderHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.FindOne(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func changeOrderStatusHandler(svc *ord.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.ChangeStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ord.HTTPError{Error: err.Error()})
			return
		}
		out, err := svc.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ord.ErrNotFound):
		c.JSON(http.StatusNotFound, ord.HTTPError{Error: err.Error()})
	case errors.Is(err, ord.ErrInvalidProduct), errors.Is(err, ord.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ord.HTTPError{Error: err.Error()})
	default:
		log.Printf("[orders] rid=%s %s %s: %v", httpx.RID(c), c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, ord.HTTPError{Error: "internal error"})
	}
}
