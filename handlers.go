package main

import (
	"net/http"
	"strings"
	"time"

	"receiptscan/models"
	"receiptscan/pkg/receipt"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)

	// receipt submission is open: the mobile client has no account
	r.POST("/receipts", submitReceiptHandler)
	r.POST("/receipts/scan", scanReceiptHandler)
	r.POST("/receipts/text", textReceiptHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.GET("/stores", listStoresHandler)
	authGroup.POST("/stores", createStoreHandler)
	authGroup.POST("/stores/:id/items", createCatalogItemHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": usernameVal.(string)})
}

// Transport records shared with the mobile client.

type receiptItemDTO struct {
	Quantity    int      `json:"quantity"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

type receiptSummaryDTO struct {
	StoreName *string          `json:"storeName"`
	Address   *string          `json:"address"`
	Items     []receiptItemDTO `json:"items"`
}

type fragmentDTO struct {
	Text   string `json:"text" binding:"required"`
	Top    int    `json:"top"`
	Bottom int    `json:"bottom"`
	Left   int    `json:"left"`
	Right  int    `json:"right"`
}

// receiptResponse carries the verification verdict back to the client. The
// engine's summary is echoed in "received" so degraded-mode callers can render
// what the server understood.
type receiptResponse struct {
	StoreExists      bool               `json:"store_exists"`
	ItemsExist       []bool             `json:"items_exist"`
	Status           string             `json:"status"`
	Received         *receiptSummaryDTO `json:"received,omitempty"`
	StoreNameMissing *bool              `json:"storeNameMissing,omitempty"`
}

func summaryToDTO(s receipt.Summary) receiptSummaryDTO {
	dto := receiptSummaryDTO{Items: make([]receiptItemDTO, 0, len(s.Items))}
	if s.StoreName != "" {
		name := s.StoreName
		dto.StoreName = &name
	}
	if s.Address != "" {
		addr := s.Address
		dto.Address = &addr
	}
	for _, it := range s.Items {
		dto.Items = append(dto.Items, receiptItemDTO{Quantity: it.Quantity, Description: it.Description, Price: it.Price})
	}
	return dto
}

// verifySummary checks a summary against the store/catalog reference tables.
func verifySummary(dto receiptSummaryDTO) (bool, []bool) {
	storeExists := false
	if dto.StoreName != nil && strings.TrimSpace(*dto.StoreName) != "" {
		var cnt int64
		pattern := "%" + strings.ToUpper(strings.TrimSpace(*dto.StoreName)) + "%"
		db.Model(&models.Store{}).Where("UPPER(name) LIKE ? OR ? LIKE '%' || UPPER(name) || '%'", pattern, strings.ToUpper(*dto.StoreName)).Count(&cnt)
		storeExists = cnt > 0
	}
	itemsExist := make([]bool, 0, len(dto.Items))
	for _, it := range dto.Items {
		var cnt int64
		pattern := "%" + strings.ToUpper(strings.TrimSpace(it.Description)) + "%"
		db.Model(&models.CatalogItem{}).Where("UPPER(description) LIKE ?", pattern).Count(&cnt)
		itemsExist = append(itemsExist, cnt > 0)
	}
	return storeExists, itemsExist
}

// submitReceiptHandler accepts a summary the client already parsed on-device.
func submitReceiptHandler(c *gin.Context) {
	var dto receiptSummaryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	storeExists, itemsExist := verifySummary(dto)
	c.JSON(http.StatusOK, receiptResponse{
		StoreExists: storeExists,
		ItemsExist:  itemsExist,
		Status:      "processed",
		Received:    &dto,
	})
}

// scanReceiptHandler runs the structuring engine over positioned OCR fragments.
func scanReceiptHandler(c *gin.Context) {
	var req struct {
		Fragments []fragmentDTO `json:"fragments" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	frags := make([]receipt.TextFragment, 0, len(req.Fragments))
	for _, f := range req.Fragments {
		frags = append(frags, receipt.TextFragment{Text: f.Text, Top: f.Top, Bottom: f.Bottom, Left: f.Left, Right: f.Right})
	}
	respondWithSummary(c, receipt.Parse(frags))
}

// textReceiptHandler is the degraded-mode entry point: flat newline-separated
// OCR text with no box geometry.
func textReceiptHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondWithSummary(c, receipt.ParseText(req.Text))
}

func respondWithSummary(c *gin.Context, s receipt.Summary) {
	dto := summaryToDTO(s)
	storeExists, itemsExist := verifySummary(dto)
	missing := s.StoreNameMissing
	c.JSON(http.StatusOK, receiptResponse{
		StoreExists:      storeExists,
		ItemsExist:       itemsExist,
		Status:           "processed",
		Received:         &dto,
		StoreNameMissing: &missing,
	})
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := RegisterUser(req.Username, req.Password); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString})
}

func listStoresHandler(c *gin.Context) {
	var stores []models.Store
	if err := db.Preload("Items").Order("id").Find(&stores).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

func createStoreHandler(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	store := models.Store{Name: req.Name, Address: req.Address}
	if err := db.Create(&store).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "store already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": store.ID})
}

func createCatalogItemHandler(c *gin.Context) {
	var store models.Store
	if err := db.First(&store, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
		return
	}
	var req struct {
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := models.CatalogItem{StoreID: store.ID, Description: req.Description}
	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": item.ID})
}
