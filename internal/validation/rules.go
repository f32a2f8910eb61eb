package validation

// Rule sets for each endpoint, composed from the field builders. They
// mirror the route surface: one set per request shape.

// pagination limits accepted by every list endpoint.
var allowedLimits = []string{"5", "10", "30"}

// ListRules validates the shared page/limit query parameters.
func ListRules() []*Rule {
	return []*Rule{
		Field("page", Query).Optional().IsInt(1).Trim().Escape(),
		Field("limit", Query).Optional().IsInt(0).IsIn(allowedLimits...).Trim().Escape(),
	}
}

// IDRule validates an integer id at the given source.
func IDRule(source Source, optional bool) *Rule {
	r := Field("id", source)
	if optional {
		r.Optional()
	}
	return r.IsInt(1).Trim().Escape()
}

// NameRule validates a non-empty name of bounded length.
func NameRule(source Source, optional bool) *Rule {
	r := Field("name", source)
	if optional {
		r.Optional()
	}
	return r.NotEmpty().MaxLen(255).Trim().Escape()
}

func emailRule(optional bool) *Rule {
	r := Field("email", Body)
	if optional {
		r.Optional()
	}
	return r.NotEmpty().IsEmail().NormalizeEmail()
}

func passwordRule(optional bool) *Rule {
	r := Field("password", Body)
	if optional {
		r.Optional()
	}
	return r.NotEmpty().NoWhitespace().MinLen(8).Trim().Escape()
}

// RegisterUserRules validates user registration.
func RegisterUserRules() []*Rule {
	return []*Rule{
		NameRule(Body, false),
		emailRule(false),
		passwordRule(false),
	}
}

// UpdateUserRules validates a partial user update. Every field is
// independently optional.
func UpdateUserRules() []*Rule {
	return []*Rule{
		IDRule(Param, true),
		NameRule(Body, true),
		emailRule(true),
		passwordRule(true),
	}
}

// UserIDRules validates the admin-targeted user id.
func UserIDRules() []*Rule {
	return []*Rule{IDRule(Param, true)}
}

// LoginRules validates the login payload.
func LoginRules() []*Rule {
	return []*Rule{
		Field("email", Body).NotEmpty().Trim().Escape(),
		Field("password", Body).NotEmpty().Trim().Escape(),
	}
}

// ListUsersRules validates the user list query.
func ListUsersRules() []*Rule {
	return append(ListRules(),
		IDRule(Query, true),
		NameRule(Query, true),
		Field("email", Query).Optional().NotEmpty().Trim().Escape(),
	)
}

// ListCategoriesRules validates the category list query.
func ListCategoriesRules() []*Rule {
	return append(ListRules(),
		IDRule(Query, true),
		NameRule(Query, true),
		Field("user_id", Query).Optional().IsInt(1).Trim().Escape(),
	)
}

// CreateCategoryRules validates category creation. user_id is only
// honored on the admin route.
func CreateCategoryRules() []*Rule {
	return []*Rule{
		NameRule(Body, false),
		Field("user_id", Body).Optional().IsInt(1).Trim().Escape(),
	}
}

// UpdateCategoryRules validates a category rename.
func UpdateCategoryRules() []*Rule {
	return []*Rule{
		IDRule(Param, false),
		NameRule(Body, false),
	}
}

func typeRule(source Source, optional bool) *Rule {
	r := Field("type", source)
	if optional {
		r.Optional()
	}
	return r.IsIn("income", "expense")
}

func amountRule(source Source, optional bool) *Rule {
	r := Field("amount", source)
	if optional {
		r.Optional()
	}
	return r.NotEmpty().IsFloat().MaxLen(8).Trim().Escape()
}

func dateRule(source Source, optional bool) *Rule {
	r := Field("date", source)
	if optional {
		r.Optional()
	}
	return r.NotEmpty().IsDate()
}

func descriptionRule(source Source, optional bool) *Rule {
	r := Field("description", source)
	if optional {
		r.Optional()
	}
	return r.MaxLen(255).Trim().Escape()
}

func categoryNameRule(source Source, optional bool) *Rule {
	r := Field("category_name", source)
	if optional {
		r.Optional()
	}
	return r.NotEmpty().MaxLen(255).Trim().Escape()
}

// ListTransactionsRules validates the transaction list query.
func ListTransactionsRules() []*Rule {
	return append(ListRules(),
		IDRule(Query, true),
		typeRule(Query, true),
		amountRule(Query, true),
		dateRule(Query, true),
		descriptionRule(Query, true),
		categoryNameRule(Query, true),
		Field("user_id", Query).Optional().IsInt(1).Trim().Escape(),
	)
}

// CreateTransactionRules validates transaction creation.
func CreateTransactionRules() []*Rule {
	return []*Rule{
		typeRule(Body, false),
		amountRule(Body, false),
		dateRule(Body, false),
		descriptionRule(Body, false),
		categoryNameRule(Body, false),
		Field("user_id", Body).Optional().IsInt(1).Trim().Escape(),
	}
}

// UpdateTransactionRules validates a partial transaction update.
func UpdateTransactionRules() []*Rule {
	return []*Rule{
		IDRule(Param, false),
		typeRule(Body, true),
		amountRule(Body, true),
		dateRule(Body, true),
		descriptionRule(Body, true),
		categoryNameRule(Body, true),
	}
}

// ReportRules validates the monthly report query.
func ReportRules() []*Rule {
	return []*Rule{
		Field("month", Query).IntRange(1, 12).Trim().Escape(),
		Field("year", Query).IsInt(1900).Trim().Escape(),
	}
}
