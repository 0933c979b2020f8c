package pyext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/core/pkg/domain"
)

func extract(t *testing.T, source string) domain.FileFact {
	t.Helper()
	fact := domain.FileFact{Path: "test.py", Language: domain.LanguagePython}
	Extract(&fact, []byte(source))
	return fact
}

func TestExtract_Imports(t *testing.T) {
	fact := extract(t, `import os
import json, re
import numpy as np
from django.db import models
from flask import Flask, request
`)

	assert.Equal(t, []string{"os"}, fact.Imports["os"])
	assert.Equal(t, []string{"json"}, fact.Imports["json"])
	assert.Equal(t, []string{"re"}, fact.Imports["re"])
	assert.Equal(t, []string{"numpy"}, fact.Imports["numpy"])
	assert.Equal(t, []string{"models"}, fact.Imports["django/db"])
	assert.Equal(t, []string{"Flask", "request"}, fact.Imports["flask"])
}

func TestExtract_RelativeImports(t *testing.T) {
	fact := extract(t, `from .models import Order
from . import utils
from ..shared.types import UserId
`)

	assert.Equal(t, []string{"Order"}, fact.Imports["./models"])
	assert.Equal(t, []string{"utils"}, fact.Imports["."])
	assert.Equal(t, []string{"UserId"}, fact.Imports["../shared/types"])
}

func TestExtract_Functions(t *testing.T) {
	fact := extract(t, `def greet(name, prefix="Hello"):
    """Builds a greeting."""
    return prefix + name

async def fetch(url):
    return await get(url)
`)

	greet, ok := fact.Functions["greet(name, prefix)"]
	require.True(t, ok)
	assert.Equal(t, 1, greet.LineNumber)
	assert.Equal(t, []string{"name", "prefix"}, greet.Parameters)
	assert.Equal(t, "Builds a greeting.", greet.Docstring)
	assert.False(t, greet.IsAsync)

	fetch, ok := fact.Functions["fetch(url)"]
	require.True(t, ok)
	assert.True(t, fetch.IsAsync)
	assert.Equal(t, 5, fetch.LineNumber)
}

func TestExtract_Decorators(t *testing.T) {
	fact := extract(t, `from rest_framework.decorators import api_view

@api_view(['GET','POST'])
def user_list(request):
    pass

@app.route('/items', methods=['POST'])
def create_item():
    pass
`)

	userList := fact.Functions["user_list(request)"]
	require.Len(t, userList.Decorators, 1)
	assert.Equal(t, "api_view", userList.Decorators[0].Name)
	assert.Equal(t, []string{"['GET','POST']"}, userList.Decorators[0].Args)

	createItem := fact.Functions["create_item()"]
	require.Len(t, createItem.Decorators, 1)
	assert.Equal(t, "app.route", createItem.Decorators[0].Name)
	assert.Equal(t, []string{"'/items'", "methods=['POST']"}, createItem.Decorators[0].Args)
}

func TestExtract_Classes(t *testing.T) {
	fact := extract(t, `from django.db import models

class Order(models.Model):
    """An order placed by a user."""

    def save(self, *args, **kwargs):
        super().save(*args, **kwargs)

    def total(self):
        return sum(i.price for i in self.items.all())

class Plain:
    pass

def top_level():
    pass
`)

	order, ok := fact.Classes["Order"]
	require.True(t, ok)
	assert.Equal(t, 3, order.LineNumber)
	assert.Equal(t, []string{"models.Model"}, order.BaseClasses)
	assert.Equal(t, "An order placed by a user.", order.Docstring)

	require.Len(t, order.Methods, 2)
	save, ok := order.Methods["save(self, *args, **kwargs)"]
	require.True(t, ok)
	assert.Equal(t, 6, save.LineNumber)

	plain, ok := fact.Classes["Plain"]
	require.True(t, ok)
	assert.Nil(t, plain.BaseClasses)

	// A top-level def after the class does not attach to it.
	_, isMethod := order.Methods["top_level()"]
	assert.False(t, isMethod)
	_, isFunc := fact.Functions["top_level()"]
	assert.True(t, isFunc)
}

func TestExtract_ParameterDefaultsAndAnnotations(t *testing.T) {
	fact := extract(t, `def resize(img, width: int = 100, height=50):
    pass
`)

	fn, ok := fact.Functions["resize(img, width, height)"]
	require.True(t, ok)
	assert.Equal(t, []string{"img", "width", "height"}, fn.Parameters)
}

func TestNormalizeModule(t *testing.T) {
	tests := []struct {
		module string
		want   string
	}{
		{module: "os", want: "os"},
		{module: "django.db", want: "django/db"},
		{module: ".models", want: "./models"},
		{module: ".", want: "."},
		{module: "..shared.types", want: "../shared/types"},
		{module: "..", want: ".."},
		{module: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeModule(tt.module))
		})
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		argList string
		want    []string
	}{
		{argList: "'/items'", want: []string{"'/items'"}},
		{argList: "'/items', methods=['GET','POST']", want: []string{"'/items'", "methods=['GET','POST']"}},
		{argList: "f(a, b), c", want: []string{"f(a, b)", "c"}},
		{argList: "", want: nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitArgs(tt.argList))
	}
}

func TestExtract_Robustness(t *testing.T) {
	// Garbage yields few or no facts, never a failure.
	fact := extract(t, "}{ not python at all ((( \n\tdef broken(\n")
	assert.Empty(t, fact.Imports)
	assert.Empty(t, fact.Classes)
}
