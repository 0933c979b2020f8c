package catalog

import (
	"regexp"

	"github.com/repolens/core/pkg/domain"
)

var jsLangs = []domain.Language{domain.LanguageJavaScript, domain.LanguageTypeScript}
var pyLangs = []domain.Language{domain.LanguagePython}

func pat(id string, kind MatcherKind, expr string, langs []domain.Language, weight float64, desc string) Pattern {
	return Pattern{
		ID:          id,
		Kind:        kind,
		Expr:        regexp.MustCompile(expr),
		Languages:   langs,
		Weight:      weight,
		Description: desc,
	}
}

func withContext(p Pattern, ctx Context) Pattern {
	p.Context = ctx
	return p
}

// Default returns the built-in catalog. Weights and thresholds are tuned for
// recall over precision; per-framework minConfidence does the filtering.
func Default() *Catalog {
	return New(
		reactSignature(),
		vueSignature(),
		angularSignature(),
		nextSignature(),
		reduxSignature(),
		expressSignature(),
		nestSignature(),
		djangoSignature(),
		flaskSignature(),
		fastapiSignature(),
	)
}

func reactSignature() Signature {
	return Signature{
		Name:          "React",
		MinConfidence: 0.3,
		Languages:     jsLangs,
		Patterns: []Pattern{
			pat("react-import", MatchImport, `^react(-dom)?$`, jsLangs, 8, "react or react-dom import"),
			withContext(
				pat("react-hooks", MatchFunctionCall, `^use[A-Z]`, jsLangs, 5, "hook-convention function"),
				Context{Hook: true, RequiresImport: "react"},
			),
			withContext(
				pat("react-component", MatchFunctionCall, `^[A-Z][A-Za-z0-9]*$`, jsLangs, 3, "Capitalized component function"),
				Context{JSX: true, RequiresImport: "react"},
			),
			withContext(
				pat("react-class-component", MatchClassName, `^(React\.)?(Pure)?Component$`, jsLangs, 4, "class extending React.Component"),
				Context{Inheritance: true},
			),
			pat("react-file", MatchFileName, `\.(jsx|tsx)$`, nil, 2, "JSX/TSX file extension"),
		},
	}
}

func vueSignature() Signature {
	return Signature{
		Name:          "Vue",
		MinConfidence: 0.3,
		Languages:     jsLangs,
		Patterns: []Pattern{
			pat("vue-import", MatchImport, `^vue$|^@vue/`, jsLangs, 8, "vue import"),
			pat("vue-file", MatchFileName, `\.vue$`, nil, 6, ".vue single-file component"),
			pat("vue-composition", MatchFunctionCall, `^(ref|reactive|computed|watch|onMounted)$`, jsLangs, 3, "composition API call"),
			pat("vuex-import", MatchImport, `^vuex$|^pinia$`, jsLangs, 4, "vuex or pinia store import"),
		},
	}
}

func angularSignature() Signature {
	return Signature{
		Name:          "Angular",
		MinConfidence: 0.35,
		Languages:     []domain.Language{domain.LanguageTypeScript},
		Patterns: []Pattern{
			pat("angular-import", MatchImport, `^@angular/`, jsLangs, 8, "@angular scoped import"),
			pat("angular-decorator", MatchDecorator, `^(Component|Injectable|NgModule|Directive|Pipe)$`, jsLangs, 6, "Angular class decorator"),
			pat("angular-file", MatchFileName, `\.(component|service|module|directive|pipe)\.ts$`, nil, 4, "Angular naming convention"),
		},
	}
}

func nextSignature() Signature {
	return Signature{
		Name:          "Next.js",
		MinConfidence: 0.35,
		Languages:     jsLangs,
		Patterns: []Pattern{
			pat("next-import", MatchImport, `^next($|/)`, jsLangs, 8, "next import"),
			pat("next-pages", MatchFileName, `^(pages|app)/.*\.(jsx?|tsx?)$`, nil, 4, "pages/ or app/ routing file"),
			pat("next-data-fn", MatchFunctionCall, `^(getServerSideProps|getStaticProps|getStaticPaths)\b`, jsLangs, 5, "Next.js data function"),
		},
	}
}

func reduxSignature() Signature {
	return Signature{
		Name:          "Redux",
		MinConfidence: 0.3,
		Languages:     jsLangs,
		Patterns: []Pattern{
			pat("redux-import", MatchImport, `^redux$|^@reduxjs/toolkit$|^react-redux$`, jsLangs, 8, "redux import"),
			pat("redux-slice", MatchFunctionCall, `^(createSlice|createStore|configureStore|combineReducers)\b`, jsLangs, 5, "store construction call"),
			pat("redux-file", MatchFileName, `(store|reducers?|slices?)/.*\.(jsx?|tsx?)$`, nil, 2, "store directory convention"),
		},
	}
}

func expressSignature() Signature {
	return Signature{
		Name:          "Express",
		MinConfidence: 0.3,
		Languages:     jsLangs,
		Patterns: []Pattern{
			pat("express-import", MatchImport, `^express$`, jsLangs, 8, "express import"),
			pat("express-middleware-import", MatchImport, `^(body-parser|cors|morgan|helmet|cookie-parser)$`, jsLangs, 3, "common Express middleware"),
			pat("express-routes-file", MatchFileName, `(^|/)(routes?|controllers?|middlewares?)/`, nil, 3, "routes directory convention"),
			pat("express-handler", MatchFunctionCall, `\((req|request)\s*,\s*(res|response)\b`, jsLangs, 4, "req/res handler signature"),
		},
	}
}

func nestSignature() Signature {
	return Signature{
		Name:          "NestJS",
		MinConfidence: 0.35,
		Languages:     []domain.Language{domain.LanguageTypeScript},
		Patterns: []Pattern{
			pat("nest-import", MatchImport, `^@nestjs/`, jsLangs, 8, "@nestjs scoped import"),
			pat("nest-decorator", MatchDecorator, `^(Controller|Get|Post|Put|Patch|Delete|Injectable|Module)$`, jsLangs, 6, "Nest route or DI decorator"),
			pat("nest-file", MatchFileName, `\.(controller|service|module|guard|interceptor)\.ts$`, nil, 4, "Nest naming convention"),
		},
	}
}

func djangoSignature() Signature {
	return Signature{
		Name:          "Django",
		MinConfidence: 0.3,
		Languages:     pyLangs,
		Patterns: []Pattern{
			pat("django-import", MatchImport, `^django([./]|$)`, pyLangs, 8, "django import"),
			pat("drf-import", MatchImport, `^rest_framework([./]|$)`, pyLangs, 6, "Django REST framework import"),
			pat("django-files", MatchFileName, `(^|/)(views|urls|models|admin|serializers)\.py$`, nil, 4, "Django app file convention"),
			withContext(
				pat("django-view-class", MatchClassName, `(View|ViewSet|APIView)$`, pyLangs, 4, "view class hierarchy"),
				Context{Inheritance: true},
			),
			pat("django-decorator", MatchDecorator, `^(api_view|login_required|permission_classes)$`, pyLangs, 4, "Django view decorator"),
		},
	}
}

func flaskSignature() Signature {
	return Signature{
		Name:          "Flask",
		MinConfidence: 0.3,
		Languages:     pyLangs,
		Patterns: []Pattern{
			pat("flask-import", MatchImport, `^flask([./]|$)`, pyLangs, 8, "flask import"),
			pat("flask-route-decorator", MatchDecorator, `\.route$|^route$`, pyLangs, 6, "route decorator"),
			pat("flask-app-file", MatchFileName, `(^|/)(app|wsgi)\.py$`, nil, 2, "app entry file convention"),
		},
	}
}

func fastapiSignature() Signature {
	return Signature{
		Name:          "FastAPI",
		MinConfidence: 0.3,
		Languages:     pyLangs,
		Patterns: []Pattern{
			pat("fastapi-import", MatchImport, `^fastapi([./]|$)`, pyLangs, 8, "fastapi import"),
			pat("fastapi-decorator", MatchDecorator, `\.(get|post|put|patch|delete)$`, pyLangs, 6, "router method decorator"),
			pat("pydantic-import", MatchImport, `^pydantic([./]|$)`, pyLangs, 3, "pydantic model import"),
		},
	}
}
