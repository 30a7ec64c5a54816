package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/northwind/catalog-console/models"
	"github.com/stretchr/testify/assert"
)

func TestHandleList(t *testing.T) {
	allMockProducts := []models.Product{
		{ID: 17, Name: "Alice Mutton", CategoryID: ptr(6), Discontinued: true},
		{ID: 3, Name: "Aniseed Syrup", CategoryID: ptr(2)},
		{ID: 1, Name: "Chai", CategoryID: ptr(1)},
		{ID: 5, Name: "Chef Anton's Gumbo Mix", CategoryID: ptr(2), Discontinued: true},
	}

	testCases := []struct {
		name               string
		choice             string
		category           string
		mockRepoSetup      func() *MockProductRepo
		expectedStatus     models.Status
		expectedCategoryID *int
		expectedOutput     string
		expectErr          string
	}{
		{
			name:           "All products",
			choice:         "1",
			mockRepoSetup:  func() *MockProductRepo { return &MockProductRepo{SourceProducts: allMockProducts} },
			expectedStatus: models.StatusAll,
			expectedOutput: "\nAll Products (4 found):\n" +
				"Alice Mutton [DISCONTINUED]\n" +
				"Aniseed Syrup\n" +
				"Chai\n" +
				"Chef Anton's Gumbo Mix [DISCONTINUED]\n",
		},
		{
			name:           "Active only",
			choice:         "2",
			mockRepoSetup:  func() *MockProductRepo { return &MockProductRepo{SourceProducts: allMockProducts} },
			expectedStatus: models.StatusActive,
			expectedOutput: "\nActive Products (2 found):\nAniseed Syrup\nChai\n",
		},
		{
			name:           "Discontinued only",
			choice:         "3",
			mockRepoSetup:  func() *MockProductRepo { return &MockProductRepo{SourceProducts: allMockProducts} },
			expectedStatus: models.StatusDiscontinued,
			expectedOutput: "\nDiscontinued Products (2 found):\nAlice Mutton [DISCONTINUED]\nChef Anton's Gumbo Mix [DISCONTINUED]\n",
		},
		{
			name:           "Unknown choice lists all",
			choice:         "9",
			mockRepoSetup:  func() *MockProductRepo { return &MockProductRepo{SourceProducts: allMockProducts} },
			expectedStatus: models.StatusAll,
			expectedOutput: "All Products (4 found):",
		},
		{
			name:           "Empty catalog",
			choice:         "2",
			mockRepoSetup:  func() *MockProductRepo { return &MockProductRepo{} },
			expectedStatus: models.StatusActive,
			expectedOutput: "\nActive Products (0 found):\n",
		},
		{
			name:               "Category filter",
			choice:             "1",
			category:           "2",
			mockRepoSetup:      func() *MockProductRepo { return &MockProductRepo{SourceProducts: allMockProducts} },
			expectedStatus:     models.StatusAll,
			expectedCategoryID: ptr(2),
			expectedOutput:     "\nAll Products (2 found):\nAniseed Syrup\nChef Anton's Gumbo Mix [DISCONTINUED]\n",
		},
		{
			name:               "Category and status filters combine",
			choice:             "2",
			category:           "2",
			mockRepoSetup:      func() *MockProductRepo { return &MockProductRepo{SourceProducts: allMockProducts} },
			expectedStatus:     models.StatusActive,
			expectedCategoryID: ptr(2),
			expectedOutput:     "\nActive Products (1 found):\nAniseed Syrup\n",
		},
		{
			name:          "Unparsable category",
			choice:        "1",
			category:      "drinks",
			mockRepoSetup: func() *MockProductRepo { return &MockProductRepo{SourceProducts: allMockProducts} },
			expectErr:     "Category ID",
		},
		{
			name:           "Repository error",
			choice:         "1",
			mockRepoSetup:  func() *MockProductRepo { return &MockProductRepo{Err: errors.New("db down")} },
			expectedStatus: models.StatusAll,
			expectErr:      "db down",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := newTestHandler(mockRepo, nil)
			c, out := newTestConsole(tc.choice, tc.category)

			// Act
			err := handler.HandleList(context.Background(), c)

			// Assert
			if tc.expectErr != "" {
				assert.ErrorContains(t, err, tc.expectErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, mockRepo.lastCalledFilter.Status)
			assert.Equal(t, tc.expectedCategoryID, mockRepo.lastCalledFilter.CategoryID)
			assert.Contains(t, out.String(), tc.expectedOutput)
		})
	}
}
