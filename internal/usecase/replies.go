package usecase

import (
	"fmt"
	"strings"

	"sneaker-fulfillment/internal/domain"
)

const (
	ReplyNoResults = "No sneakers found for the specified criteria."

	listHeader = "Choose the correct sneaker you want:\n"
	listFooter = "\n\nPlease refine your search if you can't see the sneaker you wanted from this list (e.g. colour or more key words) "

	selectionNoReleaseDate = "Release date not available"
	followupNoReleaseDate  = "No release date available"
	priceUnavailable       = "N/A"
)

func listReply(products []domain.Product) string {
	lines := make([]string, 0, len(products))
	for i, p := range products {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, p.Name))
	}
	return listHeader + strings.Join(lines, "\n") + listFooter
}

func selectionReply(p domain.Product, info domain.InfoType) string {
	if info == domain.InfoPrice {
		return fmt.Sprintf("The retail price of %s is $%s and the current lowest resell price is $%s. Would you like to know more details?",
			p.Name, amountText(p.RetailPrice), resellText(p))
	}
	if p.Description != "" {
		return fmt.Sprintf("Details for %s: %s. Would you like to know the price?", p.Name, p.Description)
	}
	return fmt.Sprintf("Details are limited. Release Date: %s. Would you like to know the price?",
		releaseDateText(p, selectionNoReleaseDate))
}

func followupReply(p domain.Product, info domain.InfoType) string {
	if info == domain.InfoPrice {
		return fmt.Sprintf("The price of %s is $%s and the current lowest resell price is $%s.",
			p.Name, amountText(p.RetailPrice), resellText(p))
	}
	if p.Description != "" {
		return fmt.Sprintf("Details for %s: %s", p.Name, p.Description)
	}
	return fmt.Sprintf("Details for %s are currently limited. Release Date: %s",
		p.Name, releaseDateText(p, followupNoReleaseDate))
}

func amountText(a domain.Amount) string {
	if a.IsZero() {
		return priceUnavailable
	}
	return string(a)
}

func resellText(p domain.Product) string {
	a, _ := p.ResellPrice(domain.MarketplaceStockX)
	return amountText(a)
}

func releaseDateText(p domain.Product, fallback string) string {
	if p.ReleaseDate == "" {
		return fallback
	}
	return p.ReleaseDate
}
