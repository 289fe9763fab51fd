package service

import (
	"github.com/nestavo/contracts/backend/model"
)

// Built-in templates for the standard booking flows. The markup is the raw
// document skeleton; placeholders are resolved by RenderMarkup at render time.

const rentalMarkup = `<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>Contrat de location {{CONTRACT_ID}}</title></head>
<body>
{{WATERMARK}}
<h1>Contrat de location</h1>
<p>Référence: {{CONTRACT_ID}}</p>
<h2>Parties</h2>
<p>Le bailleur: {{LANDLORD_NAME}} ({{LANDLORD_EMAIL}}, {{LANDLORD_PHONE}})</p>
<p>Le locataire: {{TENANT_NAME}} ({{TENANT_EMAIL}}, {{TENANT_PHONE}})</p>
<h2>Bien loué</h2>
<p>{{PROPERTY_TITLE}}, {{PROPERTY_ADDRESS}} — {{PROPERTY_SURFACE}} m², {{PROPERTY_ROOMS}} pièces</p>
<h2>Conditions</h2>
<p>Loyer mensuel: {{monthlyRent}} €</p>
<p>Dépôt de garantie: {{depositAmount}} €</p>
<p>Durée: du {{startDate}} au {{endDate}}</p>
<p>Surface déclarée: {{surface}} m², {{rooms}} pièces</p>
{{QR_CODE}}
</body>
</html>`

const purchaseMarkup = `<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>Compromis de vente {{CONTRACT_ID}}</title></head>
<body>
{{WATERMARK}}
<h1>Compromis de vente</h1>
<p>Référence: {{CONTRACT_ID}}</p>
<h2>Parties</h2>
<p>Le vendeur: {{SELLER_NAME}} ({{SELLER_EMAIL}})</p>
<p>L'acquéreur: {{BUYER_NAME}} ({{BUYER_EMAIL}})</p>
<h2>Bien</h2>
<p>{{PROPERTY_TITLE}}, {{PROPERTY_ADDRESS}}</p>
<h2>Conditions</h2>
<p>Prix de vente: {{salePrice}} €</p>
<p>Date de signature prévue: {{closingDate}}</p>
{{QR_CODE}}
</body>
</html>`

const vacationMarkup = `<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>Location saisonnière {{CONTRACT_ID}}</title></head>
<body>
{{WATERMARK}}
<h1>Contrat de location saisonnière</h1>
<p>Référence: {{CONTRACT_ID}}</p>
<h2>Parties</h2>
<p>L'hôte: {{HOST_NAME}} ({{HOST_EMAIL}})</p>
<p>Le voyageur: {{GUEST_NAME}} ({{GUEST_EMAIL}})</p>
<h2>Séjour</h2>
<p>{{PROPERTY_TITLE}}, {{PROPERTY_ADDRESS}}</p>
<p>Du {{checkIn}} au {{checkOut}}</p>
<p>Tarif total: {{totalPrice}} €</p>
{{QR_CODE}}
</body>
</html>`

// DefaultTemplates returns the built-in templates registered at startup.
func DefaultTemplates() []*model.ContractTemplate {
	return []*model.ContractTemplate{
		{
			ID:     "rental_template",
			Type:   model.TypeRental,
			Markup: rentalMarkup,
			Variables: []model.TemplateVariable{
				{Key: "monthlyRent", Label: "Loyer mensuel", ValueType: model.VarMoney, Required: true},
				{Key: "depositAmount", Label: "Dépôt de garantie", ValueType: model.VarMoney, Required: true},
				{Key: "startDate", Label: "Date de début", ValueType: model.VarDate, Required: true},
				{Key: "endDate", Label: "Date de fin", ValueType: model.VarDate, Required: true},
				{Key: "surface", Label: "Surface", ValueType: model.VarNumber, Required: true},
				{Key: "rooms", Label: "Nombre de pièces", ValueType: model.VarNumber, Required: true},
				{Key: "specialConditions", Label: "Conditions particulières", ValueType: model.VarString, Required: false},
			},
			Clauses: []model.LegalClause{
				{ID: "rental_usage", Title: "Usage des lieux", Content: "Le locataire s'engage à occuper les lieux à titre de résidence principale.", Required: true, Order: 1},
				{ID: "rental_deposit", Title: "Dépôt de garantie", Content: "Le dépôt de garantie est restitué dans un délai maximal de deux mois après restitution des clés.", Required: true, Order: 2},
				{ID: "rental_insurance", Title: "Assurance", Content: "Le locataire doit justifier d'une assurance habitation à la remise des clés.", Required: true, Order: 3},
			},
			Active: true,
		},
		{
			ID:     "purchase_template",
			Type:   model.TypePurchase,
			Markup: purchaseMarkup,
			Variables: []model.TemplateVariable{
				{Key: "salePrice", Label: "Prix de vente", ValueType: model.VarMoney, Required: true},
				{Key: "closingDate", Label: "Date de signature", ValueType: model.VarDate, Required: true},
				{Key: "financingClause", Label: "Condition suspensive de financement", ValueType: model.VarString, Required: false},
			},
			Clauses: []model.LegalClause{
				{ID: "purchase_retraction", Title: "Délai de rétractation", Content: "L'acquéreur dispose d'un délai de rétractation de dix jours.", Required: true, Order: 1},
				{ID: "purchase_financing", Title: "Financement", Content: "Le compromis est conclu sous condition suspensive d'obtention du financement.", Required: false, Order: 2},
			},
			Active: true,
		},
		{
			ID:     "vacation_template",
			Type:   model.TypeVacationRental,
			Markup: vacationMarkup,
			Variables: []model.TemplateVariable{
				{Key: "checkIn", Label: "Date d'arrivée", ValueType: model.VarDate, Required: true},
				{Key: "checkOut", Label: "Date de départ", ValueType: model.VarDate, Required: true},
				{Key: "totalPrice", Label: "Tarif total", ValueType: model.VarMoney, Required: true},
			},
			Clauses: []model.LegalClause{
				{ID: "vacation_capacity", Title: "Capacité d'accueil", Content: "Le nombre d'occupants ne peut excéder la capacité indiquée dans l'annonce.", Required: true, Order: 1},
			},
			Active: true,
		},
	}
}

// SeedDefaults registers the built-in templates into the registry.
func SeedDefaults(registry *TemplateRegistry) error {
	for _, t := range DefaultTemplates() {
		if err := registry.Register(t); err != nil {
			return err
		}
	}
	return nil
}
